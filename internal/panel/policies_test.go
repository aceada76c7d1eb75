package panel

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/agrisure-console/internal/form"
	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
	"github.com/noah-isme/agrisure-console/pkg/export"
)

type fakePolicyReader struct {
	policies         []models.Policy
	insurers         []models.Insurer
	listErr          *apperrors.Error
	submittedRequest *models.PolicyRequestDraft
}

func (f *fakePolicyReader) ListFarmerPolicies(context.Context) ([]models.Policy, *apperrors.Error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.policies, nil
}

func (f *fakePolicyReader) GetFarmerPolicy(_ context.Context, id string) (*models.Policy, *apperrors.Error) {
	for i := range f.policies {
		if f.policies[i].ID == id {
			return &f.policies[i], nil
		}
	}
	return nil, apperrors.Clone(apperrors.ErrNotFound, "policy not found")
}

func (f *fakePolicyReader) ListApprovedInsurers(context.Context) ([]models.Insurer, *apperrors.Error) {
	return f.insurers, nil
}

func (f *fakePolicyReader) SubmitPolicyRequest(_ context.Context, draft models.PolicyRequestDraft) *apperrors.Error {
	f.submittedRequest = &draft
	return nil
}

func ownedPolicies() []models.Policy {
	return []models.Policy{
		{ID: "p-1", PolicyNumber: "POL-2026-001", CropType: "Wheat", Status: models.StatusActive, InsurerName: "Kisan Suraksha"},
		{ID: "p-2", PolicyNumber: "POL-2025-117", CropType: "Soybean", Status: models.StatusExpired, InsurerName: "Bharat AgriShield"},
	}
}

func TestPolicyPanelOpenLoadsBothTabs(t *testing.T) {
	client := &fakePolicyReader{
		policies: ownedPolicies(),
		insurers: []models.Insurer{{ID: "ins-1", CompanyName: "Kisan Suraksha", Status: models.StatusApproved}},
	}
	p := NewPolicyPanel(client, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	assert.Len(t, p.VisiblePolicies(), 2)
	assert.Len(t, p.VisibleInsurers(), 1)
}

func TestPolicyPanelStatusFilterNarrowsView(t *testing.T) {
	client := &fakePolicyReader{policies: ownedPolicies()}
	p := NewPolicyPanel(client, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	require.NoError(t, p.Policies().SetStatus(context.Background(), "active"))
	visible := p.VisiblePolicies()
	require.Len(t, visible, 1)
	assert.Equal(t, "POL-2026-001", visible[0].PolicyNumber)
}

func TestPolicyPanelDetail(t *testing.T) {
	client := &fakePolicyReader{policies: ownedPolicies()}
	p := NewPolicyPanel(client, nil, nil)

	policy, err := p.Detail(context.Background(), "p-2")
	require.NoError(t, err)
	assert.Equal(t, "Soybean", policy.CropType)

	_, err = p.Detail(context.Background(), "missing")
	require.Error(t, err)
}

func TestPolicyPanelExportCoversOnlyVisibleRows(t *testing.T) {
	client := &fakePolicyReader{policies: ownedPolicies()}
	store, err := export.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	p := NewPolicyPanel(client, store, nil)
	require.NoError(t, p.Open(context.Background()))
	require.NoError(t, p.Policies().SetStatus(context.Background(), "active"))

	path, err := p.ExportCSV()
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "POL-2026-001")
	assert.NotContains(t, content, "POL-2025-117", "filtered-out rows stay out of the export")
	assert.Equal(t, 2, len(strings.Split(strings.TrimSpace(content), "\n")), "header plus one row")
}

func TestPolicyPanelExportPDF(t *testing.T) {
	client := &fakePolicyReader{policies: ownedPolicies()}
	store, err := export.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	p := NewPolicyPanel(client, store, nil)
	require.NoError(t, p.Open(context.Background()))

	path, err := p.ExportPDF()
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestPolicyPanelRequestFormSubmits(t *testing.T) {
	client := &fakePolicyReader{policies: ownedPolicies()}
	p := NewPolicyPanel(client, nil, nil)

	f := p.NewRequestForm()
	f.SetField(form.RequestInsurer, "ins-1")
	f.SetField(form.RequestCrop, "Wheat")
	f.SetArea(2.5)
	f.SetField(form.RequestSowingDate, "2026-06-15")
	f.SetField(form.RequestAddress, "Village Khera")
	f.SetField(form.RequestState, "Madhya Pradesh")
	f.SetField(form.RequestDistrict, "Indore")
	f.SetField(form.RequestPincode, "452001")
	f.AttachFarmImage("corner.jpg", "image/jpeg", []byte{1}, "22.71,75.85")

	require.NoError(t, f.Submit(context.Background()))
	require.NotNil(t, client.submittedRequest)
	assert.Equal(t, "ins-1", client.submittedRequest.InsurerID)
	require.Len(t, client.submittedRequest.FarmImages, 1)
	assert.Equal(t, "22.71,75.85", client.submittedRequest.FarmImages[0].GPS)
}

func TestPolicyPanelExportWithoutStoreFails(t *testing.T) {
	p := NewPolicyPanel(&fakePolicyReader{policies: ownedPolicies()}, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	_, err := p.ExportCSV()
	assert.Error(t, err)
}
