package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type wireSession struct {
	ID         string `json:"id"`
	AltID      string `json:"_id"`
	Device     string `json:"device"`
	UserAgent  string `json:"userAgent"`
	IP         string `json:"ip"`
	LastActive string `json:"lastActive"`
	Current    bool   `json:"current"`
}

func (w wireSession) toModel() models.Session {
	return models.Session{
		ID:         canonicalID(w.ID, w.AltID),
		Device:     firstNonEmpty(w.Device, w.UserAgent),
		IP:         w.IP,
		LastActive: parseTime(w.LastActive),
		Current:    w.Current,
		Status:     models.StatusActive,
	}
}

// ListSessions fetches the caller's authenticated sessions. GET /sessions
func (c *Client) ListSessions(ctx context.Context) ([]models.Session, *apperrors.Error) {
	body, appErr := c.do(ctx, http.MethodGet, "sessions.list", "/sessions", nil, nil)
	if appErr != nil {
		return nil, appErr
	}

	raw, _ := pickList(body, "data", "sessions")
	if raw == nil {
		return []models.Session{}, nil
	}

	var wires []wireSession
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to decode sessions")
	}

	sessions := make([]models.Session, 0, len(wires))
	for _, w := range wires {
		sessions = append(sessions, w.toModel())
	}
	return sessions, nil
}

// RevokeSession terminates one session. DELETE /sessions/:id
func (c *Client) RevokeSession(ctx context.Context, id string) *apperrors.Error {
	_, appErr := c.do(ctx, http.MethodDelete, "sessions.revoke", pathf("/sessions/%s", id), nil, nil)
	return appErr
}

// RevokeAllSessions terminates every session including the caller's own.
// POST /sessions/revoke-all
func (c *Client) RevokeAllSessions(ctx context.Context) *apperrors.Error {
	_, appErr := c.do(ctx, http.MethodPost, "sessions.revoke-all", "/sessions/revoke-all", nil, nil)
	return appErr
}
