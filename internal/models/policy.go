package models

import "time"

// Policy is an issued crop-insurance policy as seen by the farmer dashboard.
type Policy struct {
	ID           string    `json:"id"`
	PolicyNumber string    `json:"policy_number"`
	CropType     string    `json:"crop_type"`
	SumInsured   float64   `json:"sum_insured"`
	Premium      float64   `json:"premium"`
	Status       Status    `json:"status"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	InsurerName  string    `json:"insurer_name"`
}

// SearchFields lists the text fields the substring search inspects.
func (p Policy) SearchFields() []string {
	return []string{p.CropType, p.PolicyNumber, p.Status.Label()}
}

// ItemID implements controller.Item.
func (p Policy) ItemID() string { return p.ID }

// ItemStatus implements controller.Item.
func (p Policy) ItemStatus() Status { return p.Status }
