package models

import "time"

// Farmer is a farmer record managed from the insurer dashboard.
type Farmer struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	AadhaarNumber string    `json:"aadhaar_number"`
	Address       string    `json:"address"`
	State         string    `json:"state"`
	District      string    `json:"district"`
	Pincode       string    `json:"pincode"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// SearchFields lists the text fields the substring search inspects.
func (f Farmer) SearchFields() []string {
	return []string{f.FullName, f.AadhaarNumber, f.Status.Label()}
}

// ItemID implements controller.Item.
func (f Farmer) ItemID() string { return f.ID }

// ItemStatus implements controller.Item.
func (f Farmer) ItemStatus() Status { return f.Status }

// FarmerDraft is the insurer-entered create/update payload.
type FarmerDraft struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	AadhaarNumber string `json:"aadhaar_number"`
	Address       string `json:"address"`
	State         string `json:"state"`
	District      string `json:"district"`
	Pincode       string `json:"pincode"`
}
