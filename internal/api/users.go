package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type wirePendingUser struct {
	ID          string `json:"id"`
	AltID       string `json:"_id"`
	FullName    string `json:"fullName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	SubmittedAt string `json:"createdAt"`
}

func (w wirePendingUser) toModel() models.PendingUser {
	return models.PendingUser{
		ID:          canonicalID(w.ID, w.AltID),
		FullName:    firstNonEmpty(w.FullName, w.Name),
		Email:       w.Email,
		Phone:       w.Phone,
		Role:        models.UserRole(strings.ToUpper(strings.TrimSpace(w.Role))),
		Status:      parseStatus(w.Status),
		SubmittedAt: parseTime(w.SubmittedAt),
	}
}

// ListPendingUsers fetches every signup awaiting review. The backend returns
// all roles mixed together; role filtering happens client-side.
// GET /admin/users/pending
func (c *Client) ListPendingUsers(ctx context.Context) ([]models.PendingUser, *apperrors.Error) {
	body, appErr := c.do(ctx, http.MethodGet, "admin.users.pending", "/admin/users/pending", nil, nil)
	if appErr != nil {
		return nil, appErr
	}

	raw, _ := pickList(body, "data", "users", "pendingUsers")
	if raw == nil {
		return []models.PendingUser{}, nil
	}

	var wires []wirePendingUser
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to decode pending users")
	}

	users := make([]models.PendingUser, 0, len(wires))
	for _, w := range wires {
		users = append(users, w.toModel())
	}
	return users, nil
}

type reviewUserRequest struct {
	Approved        bool   `json:"approved"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// ReviewUser approves or rejects a pending signup.
// PUT /admin/users/:id/approve with body {approved, rejectionReason?}
func (c *Client) ReviewUser(ctx context.Context, id string, approved bool, rejectionReason string) *apperrors.Error {
	payload := reviewUserRequest{Approved: approved}
	if !approved {
		payload.RejectionReason = rejectionReason
	}
	_, appErr := c.do(ctx, http.MethodPut, "admin.users.review", pathf("/admin/users/%s/approve", id), nil, payload)
	return appErr
}
