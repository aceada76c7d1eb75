// Package session holds the signed-in user's bearer token and the small
// amount of claim introspection the console needs. Token verification is the
// backend's job; parsing here is unverified and used only to know when to
// prompt for a fresh login.
package session

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Navigator performs route changes in the embedding UI.
type Navigator interface {
	NavigateTo(route string)
}

// Manager stores the current token and answers expiry questions.
type Manager struct {
	mu    sync.Mutex
	token string
}

// NewManager returns an empty (signed-out) manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetToken replaces the stored bearer token. An empty token signs out.
func (m *Manager) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = strings.TrimSpace(token)
}

// Clear drops the stored token.
func (m *Manager) Clear() {
	m.SetToken("")
}

// Authorization returns the header value for authenticated calls, or ""
// when signed out. Implements api.TokenSource.
func (m *Manager) Authorization() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return ""
	}
	return "Bearer " + m.token
}

// ExpiresAt reports the token's expiry claim. ok is false when no token is
// stored or the claim is absent or unreadable.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the stored token has a past expiry claim. A
// missing or unreadable claim counts as not expired; the backend has the
// final word either way.
func (m *Manager) Expired(now time.Time) bool {
	exp, ok := m.ExpiresAt()
	if !ok {
		return false
	}
	return exp.Before(now)
}

// LoginRoute builds the login route, optionally carrying a message to show
// on the login screen (used by the duplicate-registration redirect flow).
func LoginRoute(base, message string) string {
	if base == "" {
		base = "/login"
	}
	if message == "" {
		return base
	}
	return base + "?message=" + url.QueryEscape(message)
}
