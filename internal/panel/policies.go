package panel

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/controller"
	"github.com/noah-isme/agrisure-console/internal/form"
	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
	"github.com/noah-isme/agrisure-console/pkg/export"
)

type policyReader interface {
	ListFarmerPolicies(ctx context.Context) ([]models.Policy, *apperrors.Error)
	GetFarmerPolicy(ctx context.Context, id string) (*models.Policy, *apperrors.Error)
	ListApprovedInsurers(ctx context.Context) ([]models.Insurer, *apperrors.Error)
	SubmitPolicyRequest(ctx context.Context, draft models.PolicyRequestDraft) *apperrors.Error
}

type exportStore interface {
	Save(filename string, data []byte) (string, error)
}

// PolicyPanel is the farmer's policy dashboard: the owned policy list with a
// detail view, the approved-insurer directory, and CSV/PDF export of exactly
// what is on screen.
type PolicyPanel struct {
	client policyReader
	store  exportStore
	logger *zap.Logger

	policies *controller.ListController[models.Policy]
	insurers *controller.ListController[models.Insurer]
}

// NewPolicyPanel wires the page. store may be nil when export is unused.
func NewPolicyPanel(client policyReader, store exportStore, logger *zap.Logger) *PolicyPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &PolicyPanel{client: client, store: store, logger: logger}

	p.policies = controller.NewListController(func(ctx context.Context, _ models.FilterState) ([]models.Policy, *models.Pagination, error) {
		policies, appErr := client.ListFarmerPolicies(ctx)
		if appErr != nil {
			return nil, nil, appErr
		}
		return policies, nil, nil
	}, logger)

	p.insurers = controller.NewListController(func(ctx context.Context, _ models.FilterState) ([]models.Insurer, *models.Pagination, error) {
		insurers, appErr := client.ListApprovedInsurers(ctx)
		if appErr != nil {
			return nil, nil, appErr
		}
		return insurers, nil, nil
	}, logger)

	return p
}

// Open fetches both collections. The insurer directory failing does not
// block the policy list; its own error message surfaces on its tab.
func (p *PolicyPanel) Open(ctx context.Context) error {
	err := p.policies.Refresh(ctx)
	if insErr := p.insurers.Refresh(ctx); insErr != nil && err == nil {
		err = insErr
	}
	return err
}

// Policies exposes the policy list controller.
func (p *PolicyPanel) Policies() *controller.ListController[models.Policy] {
	return p.policies
}

// Insurers exposes the approved-insurer list controller.
func (p *PolicyPanel) Insurers() *controller.ListController[models.Insurer] {
	return p.insurers
}

// VisiblePolicies returns the policies to render under the current filter.
func (p *PolicyPanel) VisiblePolicies() []models.Policy {
	snap := p.policies.Snapshot()
	return controller.Visible(snap.Items, snap.Filter.Search, snap.Filter.Status)
}

// VisibleInsurers returns the insurer directory rows under its own filter.
func (p *PolicyPanel) VisibleInsurers() []models.Insurer {
	snap := p.insurers.Snapshot()
	return controller.Visible(snap.Items, snap.Filter.Search, snap.Filter.Status)
}

// NewRequestForm starts a policy application aimed at one of the approved
// insurers shown in the directory.
func (p *PolicyPanel) NewRequestForm() *form.PolicyRequestForm {
	return form.NewPolicyRequestForm(p.client, p.logger)
}

// Detail fetches one policy for the detail view.
func (p *PolicyPanel) Detail(ctx context.Context, id string) (*models.Policy, error) {
	policy, appErr := p.client.GetFarmerPolicy(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return policy, nil
}

// ExportCSV renders the currently visible policies to a CSV file and returns
// its path.
func (p *PolicyPanel) ExportCSV() (string, error) {
	data, err := export.NewCSVExporter().Render(export.PolicyDataset(p.VisiblePolicies()))
	if err != nil {
		return "", err
	}
	return p.save("csv", data)
}

// ExportPDF renders the currently visible policies to a PDF file and returns
// its path.
func (p *PolicyPanel) ExportPDF() (string, error) {
	data, err := export.NewPDFExporter().Render(export.PolicyDataset(p.VisiblePolicies()), "my policies")
	if err != nil {
		return "", err
	}
	return p.save("pdf", data)
}

func (p *PolicyPanel) save(ext string, data []byte) (string, error) {
	if p.store == nil {
		return "", fmt.Errorf("no export store configured")
	}
	name := fmt.Sprintf("policies-%s.%s", time.Now().Format("20060102-150405"), ext)
	path, err := p.store.Save(name, data)
	if err != nil {
		p.logger.Warn("export_failed", zap.String("format", ext), zap.Error(err))
		return "", err
	}
	p.logger.Info("export_written", zap.String("path", path))
	return path, nil
}
