package panel

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/controller"
	"github.com/noah-isme/agrisure-console/internal/form"
	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type farmerDirectoryClient interface {
	ListFarmers(ctx context.Context) ([]models.Farmer, *apperrors.Error)
	CreateFarmer(ctx context.Context, draft models.FarmerDraft) *apperrors.Error
	UpdateFarmer(ctx context.Context, id string, draft models.FarmerDraft) *apperrors.Error
}

// FarmerDirectoryPanel is the insurer's farmer registry: a searchable list
// plus the two-step add/edit form.
type FarmerDirectoryPanel struct {
	client farmerDirectoryClient
	logger *zap.Logger
	list   *controller.ListController[models.Farmer]
}

// NewFarmerDirectoryPanel wires the page.
func NewFarmerDirectoryPanel(client farmerDirectoryClient, logger *zap.Logger) *FarmerDirectoryPanel {
	p := &FarmerDirectoryPanel{client: client, logger: logger}
	p.list = controller.NewListController(func(ctx context.Context, _ models.FilterState) ([]models.Farmer, *models.Pagination, error) {
		farmers, appErr := client.ListFarmers(ctx)
		if appErr != nil {
			return nil, nil, appErr
		}
		return farmers, nil, nil
	}, logger)
	return p
}

// Open performs the mount-time fetch.
func (p *FarmerDirectoryPanel) Open(ctx context.Context) error {
	return p.list.Refresh(ctx)
}

// List exposes the list controller.
func (p *FarmerDirectoryPanel) List() *controller.ListController[models.Farmer] {
	return p.list
}

// Visible returns the rows to render under the current filter state.
func (p *FarmerDirectoryPanel) Visible() []models.Farmer {
	snap := p.list.Snapshot()
	return controller.Visible(snap.Items, snap.Filter.Search, snap.Filter.Status)
}

// NewAddForm starts a blank create form.
func (p *FarmerDirectoryPanel) NewAddForm() *form.FarmerUpsertForm {
	return form.NewFarmerUpsertForm(p.client, p.logger)
}

// NewEditForm starts an edit form pre-populated from the given row.
func (p *FarmerDirectoryPanel) NewEditForm(farmer models.Farmer) *form.FarmerUpsertForm {
	return form.NewFarmerEditForm(p.client, farmer, p.logger)
}

// SubmitForm submits an add/edit form and refreshes the list on success, so
// the new or changed row appears without a manual reload.
func (p *FarmerDirectoryPanel) SubmitForm(ctx context.Context, f *form.FarmerUpsertForm) error {
	if err := f.Submit(ctx); err != nil {
		return err
	}
	return p.list.Refresh(ctx)
}
