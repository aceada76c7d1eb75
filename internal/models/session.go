package models

import "time"

// Session is one authenticated device session.
type Session struct {
	ID         string    `json:"id"`
	Device     string    `json:"device"`
	IP         string    `json:"ip"`
	LastActive time.Time `json:"last_active"`
	Current    bool      `json:"current"`
	Status     Status    `json:"status"`
}

// SearchFields lists the text fields the substring search inspects.
func (s Session) SearchFields() []string {
	return []string{s.Device, s.IP, s.Status.Label()}
}

// ItemID implements controller.Item.
func (s Session) ItemID() string { return s.ID }

// ItemStatus implements controller.Item.
func (s Session) ItemStatus() Status { return s.Status }
