package models

import "time"

// UserRole represents platform roles awaiting or holding access.
type UserRole string

const (
	RoleFarmer          UserRole = "FARMER"
	RoleInsurer         UserRole = "INSURER"
	RoleServiceProvider UserRole = "SERVICE_PROVIDER"
	RoleAdmin           UserRole = "ADMIN"
)

// PendingUser is a signup awaiting admin review.
type PendingUser struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Role        UserRole  `json:"role"`
	Status      Status    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SearchFields lists the text fields the substring search inspects.
func (u PendingUser) SearchFields() []string {
	return []string{u.FullName, u.Email, u.Status.Label()}
}

// ItemID implements controller.Item.
func (u PendingUser) ItemID() string { return u.ID }

// ItemStatus implements controller.Item.
func (u PendingUser) ItemStatus() Status { return u.Status }

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}
