package models

import "strings"

// Status represents the lifecycle state of a listed record. Each page uses a
// page-specific subset; values exist for badge rendering and filter matching
// only, the backend owns all transitions.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusIssued   Status = "issued"
	StatusRevoked  Status = "revoked"
)

// StatusAll is the wildcard filter value that disables status matching.
const StatusAll = "all"

// IsWildcard reports whether raw disables status filtering.
func IsWildcard(raw string) bool {
	return raw == "" || strings.EqualFold(raw, StatusAll)
}

// Label returns the user-facing badge text.
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
