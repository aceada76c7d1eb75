package panel

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/controller"
	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
	"github.com/noah-isme/agrisure-console/pkg/metrics"
)

type insurerDirectory interface {
	ListInsurers(ctx context.Context, filter models.FilterState) ([]models.Insurer, *models.Pagination, *apperrors.Error)
	DeleteInsurer(ctx context.Context, id string) *apperrors.Error
}

// InsurerAdminPanel is the admin's insurer management page: a paged,
// searchable insurer list with confirm-gated delete.
type InsurerAdminPanel struct {
	client  insurerDirectory
	list    *controller.ListController[models.Insurer]
	gate    *controller.ConfirmationGate
	gateway *controller.Gateway
}

// NewInsurerAdminPanel wires the page.
func NewInsurerAdminPanel(client insurerDirectory, notifier controller.Notifier, logger *zap.Logger, rec *metrics.Recorder) *InsurerAdminPanel {
	p := &InsurerAdminPanel{client: client}

	p.list = controller.NewListController(func(ctx context.Context, filter models.FilterState) ([]models.Insurer, *models.Pagination, error) {
		insurers, pagination, appErr := client.ListInsurers(ctx, filter)
		if appErr != nil {
			return nil, nil, appErr
		}
		return insurers, pagination, nil
	}, logger)

	p.gate = controller.NewConfirmationGate("")
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
func (p *InsurerAdminPanel) Open(ctx context.Context) error {
	return p.list.Refresh(ctx)
}

// List exposes the list controller for filter/search/page input.
func (p *InsurerAdminPanel) List() *controller.ListController[models.Insurer] {
	return p.list
}

// Visible returns the rows to render under the current filter state.
func (p *InsurerAdminPanel) Visible() []models.Insurer {
	snap := p.list.Snapshot()
	return controller.Visible(snap.Items, snap.Filter.Search, snap.Filter.Status)
}

// Gate exposes the confirmation dialog state.
func (p *InsurerAdminPanel) Gate() *controller.ConfirmationGate {
	return p.gate
}

// RequestDelete arms the delete confirmation for one insurer.
func (p *InsurerAdminPanel) RequestDelete(id, label string) {
	p.gate.Open(controller.PendingConfirmation{ItemID: id, Kind: controller.KindDelete, Label: label})
}

// ConfirmPending fires the armed delete. No-op when nothing is pending or a
// mutation for that insurer is already in flight.
func (p *InsurerAdminPanel) ConfirmPending(ctx context.Context) error {
	target, _, ok := p.gate.Confirm()
	if !ok {
		return nil
	}
	return p.gateway.Dispatch(ctx, controller.Mutation{ID: target.ItemID, Kind: target.Kind},
		func(ctx context.Context) error {
			return asErr(p.client.DeleteInsurer(ctx, target.ItemID))
		})
}

// CancelPending discards the armed confirmation.
func (p *InsurerAdminPanel) CancelPending() {
	p.gate.Cancel()
}
