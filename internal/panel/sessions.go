package panel

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/controller"
	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
	"github.com/noah-isme/agrisure-console/pkg/metrics"
)

type sessionClient interface {
	ListSessions(ctx context.Context) ([]models.Session, *apperrors.Error)
	RevokeSession(ctx context.Context, id string) *apperrors.Error
	RevokeAllSessions(ctx context.Context) *apperrors.Error
}

// SessionPanel lists the account's active device sessions. Revoking a single
// session refreshes the list; revoking everything signs the caller out too,
// so instead of refreshing it schedules a short-delay redirect to login.
type SessionPanel struct {
	client  sessionClient
	list    *controller.ListController[models.Session]
	gate    *controller.ConfirmationGate
	gateway *controller.Gateway
}

// SessionPanelConfig wires the panel's collaborators.
type SessionPanelConfig struct {
	Client         sessionClient
	Notifier       controller.Notifier
	Navigator      controller.Navigator
	LoginRoute     string
	RevokeAllDelay time.Duration
	Delay          func(d time.Duration, fn func())
	Logger         *zap.Logger
	Metrics        *metrics.Recorder
}

// NewSessionPanel wires the page.
func NewSessionPanel(cfg SessionPanelConfig) *SessionPanel {
	p := &SessionPanel{client: cfg.Client}

	p.list = controller.NewListController(func(ctx context.Context, _ models.FilterState) ([]models.Session, *models.Pagination, error) {
		sessions, appErr := cfg.Client.ListSessions(ctx)
		if appErr != nil {
			return nil, nil, appErr
		}
		return sessions, nil, nil
	}, cfg.Logger)

	p.gate = controller.NewConfirmationGate("")
	p.gateway = controller.NewGateway(controller.GatewayConfig{
		Gate:           p.gate,
		Refresh:        func(ctx context.Context) { _ = p.list.Refresh(ctx) },
		Notifier:       cfg.Notifier,
		Navigator:      cfg.Navigator,
		LoginRoute:     cfg.LoginRoute,
		RevokeAllDelay: cfg.RevokeAllDelay,
		Delay:          cfg.Delay,
		Logger:         cfg.Logger,
		Metrics:        cfg.Metrics,
	})

	return p
}

// Open performs the mount-time fetch.
func (p *SessionPanel) Open(ctx context.Context) error {
	return p.list.Refresh(ctx)
}

// List exposes the list controller.
func (p *SessionPanel) List() *controller.ListController[models.Session] {
	return p.list
}

// Visible returns the rows to render under the current filter state.
func (p *SessionPanel) Visible() []models.Session {
	snap := p.list.Snapshot()
	return controller.Visible(snap.Items, snap.Filter.Search, snap.Filter.Status)
}

// Gate exposes the confirmation dialog state.
func (p *SessionPanel) Gate() *controller.ConfirmationGate {
	return p.gate
}

// InFlight reports whether a revoke for the given session is still pending.
func (p *SessionPanel) InFlight(id string) bool {
	return p.gateway.InFlight(id)
}

// RequestRevoke arms the confirmation for revoking one session.
func (p *SessionPanel) RequestRevoke(id, label string) {
	p.gate.Open(controller.PendingConfirmation{ItemID: id, Kind: controller.KindRevokeSession, Label: label})
}

// RequestRevokeAll arms the confirmation for signing out everywhere.
func (p *SessionPanel) RequestRevokeAll() {
	p.gate.Open(controller.PendingConfirmation{Kind: controller.KindRevokeAll, Label: "all sessions"})
}

// ConfirmPending fires the armed revoke.
func (p *SessionPanel) ConfirmPending(ctx context.Context) error {
	target, _, ok := p.gate.Confirm()
	if !ok {
		return nil
	}
	return p.gateway.Dispatch(ctx, controller.Mutation{ID: target.ItemID, Kind: target.Kind},
		func(ctx context.Context) error {
			if target.Kind == controller.KindRevokeAll {
				return asErr(p.client.RevokeAllSessions(ctx))
			}
			return asErr(p.client.RevokeSession(ctx, target.ItemID))
		})
}

// CancelPending discards the armed confirmation.
func (p *SessionPanel) CancelPending() {
	p.gate.Cancel()
}
