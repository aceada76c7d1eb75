package models

import "time"

// Insurer represents an insurance company registered on the platform.
type Insurer struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ServiceType string    `json:"service_type"`
	LicenseNo   string    `json:"license_no"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchFields returns the ordered text fields inspected by the substring
// search: name first, then identifying number, then status label.
func (i Insurer) SearchFields() []string {
	return []string{i.CompanyName, i.LicenseNo, i.Status.Label()}
}

// ItemID implements controller.Item.
func (i Insurer) ItemID() string { return i.ID }

// ItemStatus implements controller.Item.
func (i Insurer) ItemStatus() Status { return i.Status }
