package panel

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/controller"
	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
	"github.com/noah-isme/agrisure-console/pkg/metrics"
)

type signupReviewer interface {
	ListPendingUsers(ctx context.Context) ([]models.PendingUser, *apperrors.Error)
	ReviewUser(ctx context.Context, id string, approved bool, rejectionReason string) *apperrors.Error
}

// defaultRejectionReason is sent when the admin confirms a rejection without
// typing one; the backend requires a non-empty reason.
const defaultRejectionReason = "Registration rejected by administrator"

// SignupReviewPanel is the admin's pending-registration queue. The backend
// returns every pending signup in one response, so search, status, and the
// role filter are all applied client side.
type SignupReviewPanel struct {
	client  signupReviewer
	list    *controller.ListController[models.PendingUser]
	gate    *controller.ConfirmationGate
	gateway *controller.Gateway

	role models.UserRole
}

// NewSignupReviewPanel wires the page.
func NewSignupReviewPanel(client signupReviewer, notifier controller.Notifier, logger *zap.Logger, rec *metrics.Recorder) *SignupReviewPanel {
	p := &SignupReviewPanel{client: client}

	p.list = controller.NewListController(func(ctx context.Context, _ models.FilterState) ([]models.PendingUser, *models.Pagination, error) {
		users, appErr := client.ListPendingUsers(ctx)
		if appErr != nil {
			return nil, nil, appErr
		}
		return users, nil, nil
	}, logger)

	p.gate = controller.NewConfirmationGate(defaultRejectionReason)
	p.gateway = controller.NewGateway(controller.GatewayConfig{
		Gate:     p.gate,
		Refresh:  func(ctx context.Context) { _ = p.list.Refresh(ctx) },
		Notifier: notifier,
		Logger:   logger,
		Metrics:  rec,
	})

	return p
}

// Open performs the mount-time fetch.
func (p *SignupReviewPanel) Open(ctx context.Context) error {
	return p.list.Refresh(ctx)
}

// List exposes the list controller for search input.
func (p *SignupReviewPanel) List() *controller.ListController[models.PendingUser] {
	return p.list
}

// Gate exposes the confirmation dialog state, including the typed reason.
func (p *SignupReviewPanel) Gate() *controller.ConfirmationGate {
	return p.gate
}

// SetRole narrows the queue to one role. An empty role shows everything.
// Purely client side, so no re-fetch happens.
func (p *SignupReviewPanel) SetRole(role models.UserRole) {
	p.role = role
}

// Visible returns the rows to render: role filter first, then the shared
// search/status predicate, preserving fetch order throughout.
func (p *SignupReviewPanel) Visible() []models.PendingUser {
	snap := p.list.Snapshot()
	items := snap.Items
	if p.role != "" {
		narrowed := make([]models.PendingUser, 0, len(items))
		for _, u := range items {
			if u.Role == p.role {
				narrowed = append(narrowed, u)
			}
		}
		items = narrowed
	}
	return controller.Visible(items, snap.Filter.Search, snap.Filter.Status)
}

// RequestApprove arms the approve confirmation for one signup.
func (p *SignupReviewPanel) RequestApprove(id, label string) {
	p.gate.Open(controller.PendingConfirmation{ItemID: id, Kind: controller.KindApprove, Label: label})
}

// RequestReject arms the reject confirmation, which also collects a reason.
func (p *SignupReviewPanel) RequestReject(id, label string) {
	p.gate.Open(controller.PendingConfirmation{ItemID: id, Kind: controller.KindReject, Label: label})
}

// ConfirmPending fires the armed review action. The effective reason for a
// reject is the trimmed typed text, or the administrative default when blank.
func (p *SignupReviewPanel) ConfirmPending(ctx context.Context) error {
	target, reason, ok := p.gate.Confirm()
	if !ok {
		return nil
	}
	approved := target.Kind == controller.KindApprove
	return p.gateway.Dispatch(ctx, controller.Mutation{ID: target.ItemID, Kind: target.Kind, Reason: reason},
		func(ctx context.Context) error {
			if approved {
				return asErr(p.client.ReviewUser(ctx, target.ItemID, true, ""))
			}
			return asErr(p.client.ReviewUser(ctx, target.ItemID, false, reason))
		})
}

// CancelPending discards the armed confirmation and any typed reason.
func (p *SignupReviewPanel) CancelPending() {
	p.gate.Cancel()
}
