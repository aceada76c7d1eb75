package controller

import (
	"strings"
	"sync"
)

// Kind identifies the confirmed action.
type Kind string

const (
	KindApprove       Kind = "approve"
	KindReject        Kind = "reject"
	KindDelete        Kind = "delete"
	KindIssue         Kind = "issue"
	KindRevokeSession Kind = "revoke-session"
	KindRevokeAll     Kind = "revoke-all"
)

// PendingConfirmation identifies which item and action await confirmation.
type PendingConfirmation struct {
	ItemID string
	Kind   Kind
	Label  string
}

// ConfirmationGate defers a mutation until the user explicitly confirms it.
// There is exactly one pending slot: opening a new confirmation while one is
// open replaces the previous target rather than stacking. Cancelling
// discards the slot without side effects.
type ConfirmationGate struct {
	mu            sync.Mutex
	pending       *PendingConfirmation
	reason        string
	errMsg        string
	defaultReason string
}

// NewConfirmationGate builds a gate. defaultReason substitutes a blank or
// whitespace-only reason on confirm, per the backend contract.
func NewConfirmationGate(defaultReason string) *ConfirmationGate {
	return &ConfirmationGate{defaultReason: defaultReason}
}

// Open arms the gate for the given target, replacing any previous one.
func (g *ConfirmationGate) Open(target PendingConfirmation) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = &target
	g.reason = ""
	g.errMsg = ""
}

// Cancel discards the pending confirmation without side effects.
func (g *ConfirmationGate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = nil
	g.reason = ""
	g.errMsg = ""
}

// SetReason records the free-text reason typed into the dialog.
func (g *ConfirmationGate) SetReason(reason string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reason = reason
}

// Confirm resolves the pending target and the effective reason. A blank
// reason is replaced with the gate's default. The gate stays open until the
// dispatched mutation reports back (Close or Fail).
func (g *ConfirmationGate) Confirm() (PendingConfirmation, string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return PendingConfirmation{}, "", false
	}
	reason := strings.TrimSpace(g.reason)
	if reason == "" {
		reason = g.defaultReason
	}
	return *g.pending, reason, true
}

// Close clears the gate after a successful mutation.
func (g *ConfirmationGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = nil
	g.reason = ""
	g.errMsg = ""
}

// Fail keeps the dialog open and surfaces the error inline. Used by reject
// flows so the typed reason is not lost.
func (g *ConfirmationGate) Fail(message string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errMsg = message
}

// IsOpen reports whether a confirmation is pending.
func (g *ConfirmationGate) IsOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending != nil
}

// Pending returns the current target, if any.
func (g *ConfirmationGate) Pending() *PendingConfirmation {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return nil
	}
	copy := *g.pending
	return &copy
}

// Err returns the inline error message shown in the dialog.
func (g *ConfirmationGate) Err() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.errMsg
}
