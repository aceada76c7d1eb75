package models

import "time"

// PolicyRequest is a farmer's application for cover, reviewed by an insurer.
type PolicyRequest struct {
	ID             string    `json:"id"`
	FarmerName     string    `json:"farmer_name"`
	CropType       string    `json:"crop_type"`
	AreaHectares   float64   `json:"area_hectares"`
	Status         Status    `json:"status"`
	Reason         string    `json:"reason,omitempty"`
	SubmittedAt    time.Time `json:"submitted_at"`
	FarmImageCount int       `json:"farm_image_count"`
	DocumentCount  int       `json:"document_count"`
}

// SearchFields lists the text fields the substring search inspects.
func (r PolicyRequest) SearchFields() []string {
	return []string{r.FarmerName, r.CropType, r.Status.Label()}
}

// ItemID implements controller.Item.
func (r PolicyRequest) ItemID() string { return r.ID }

// ItemStatus implements controller.Item.
func (r PolicyRequest) ItemStatus() Status { return r.Status }

// PolicyRequestDraft carries the multipart submission payload. Attachment
// bytes live alongside their logical field names; the API client owns the
// wire encoding.
type PolicyRequestDraft struct {
	InsurerID    string
	CropType     string
	AreaHectares float64
	SowingDate   string
	Address      string
	State        string
	District     string
	Pincode      string
	FarmImages   []Attachment
	Documents    []Attachment
}

// Attachment is one in-memory file queued for upload.
type Attachment struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
	GPS         string
}
