package panel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/agrisure-console/internal/form"
	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type fakeFarmerDirectory struct {
	farmers   []models.Farmer
	listCalls int

	created   *models.FarmerDraft
	updatedID string
	updated   *models.FarmerDraft
}

func (f *fakeFarmerDirectory) ListFarmers(context.Context) ([]models.Farmer, *apperrors.Error) {
	f.listCalls++
	return f.farmers, nil
}

func (f *fakeFarmerDirectory) CreateFarmer(_ context.Context, draft models.FarmerDraft) *apperrors.Error {
	f.created = &draft
	f.farmers = append(f.farmers, models.Farmer{
		ID:       "f-new",
		FullName: draft.FullName,
		Status:   models.StatusActive,
	})
	return nil
}

func (f *fakeFarmerDirectory) UpdateFarmer(_ context.Context, id string, draft models.FarmerDraft) *apperrors.Error {
	f.updatedID = id
	f.updated = &draft
	return nil
}

func fillFarmerForm(f *form.FarmerUpsertForm) {
	f.SetField(form.FarmerFullName, "Ramesh Patel")
	f.SetField(form.FarmerEmail, "ramesh@example.com")
	f.SetField(form.FarmerPhone, "9876543210")
	f.SetField(form.FarmerAadhaar, "123456789012")
	f.SetField(form.FarmerAddress, "Village Khera")
	f.SetField(form.FarmerState, "Madhya Pradesh")
	f.SetField(form.FarmerDistrict, "Indore")
	f.SetField(form.FarmerPincode, "452001")
}

func TestFarmerDirectoryAddFlowRefreshesList(t *testing.T) {
	client := &fakeFarmerDirectory{farmers: []models.Farmer{
		{ID: "f-1", FullName: "Sita Devi", AadhaarNumber: "999988887777", Status: models.StatusActive},
	}}
	p := NewFarmerDirectoryPanel(client, nil)
	require.NoError(t, p.Open(context.Background()))
	require.Len(t, p.Visible(), 1)

	f := p.NewAddForm()
	fillFarmerForm(f)
	require.True(t, f.Next())
	require.True(t, f.Next())
	require.NoError(t, p.SubmitForm(context.Background(), f))

	require.NotNil(t, client.created)
	assert.Equal(t, "Ramesh Patel", client.created.FullName)
	assert.Equal(t, 2, client.listCalls, "successful submit refreshes the directory")
	assert.Len(t, p.Visible(), 2)
}

func TestFarmerDirectoryEditTargetsExistingRecord(t *testing.T) {
	existing := models.Farmer{
		ID: "f-1", FullName: "Sita Devi", Email: "sita@example.com", Phone: "9123456780",
		AadhaarNumber: "999988887777", Address: "Ward 4", State: "Bihar", District: "Patna", Pincode: "800001",
	}
	client := &fakeFarmerDirectory{farmers: []models.Farmer{existing}}
	p := NewFarmerDirectoryPanel(client, nil)
	require.NoError(t, p.Open(context.Background()))

	f := p.NewEditForm(existing)
	f.SetField(form.FarmerPhone, "9000000000")
	require.NoError(t, p.SubmitForm(context.Background(), f))

	assert.Equal(t, "f-1", client.updatedID)
	require.NotNil(t, client.updated)
	assert.Equal(t, "9000000000", client.updated.Phone)
	assert.Equal(t, "Sita Devi", client.updated.FullName)
}

func TestFarmerDirectoryInvalidFormDoesNotRefresh(t *testing.T) {
	client := &fakeFarmerDirectory{}
	p := NewFarmerDirectoryPanel(client, nil)
	require.NoError(t, p.Open(context.Background()))

	f := p.NewAddForm()
	f.SetField(form.FarmerFullName, "Ramesh Patel")
	err := p.SubmitForm(context.Background(), f)
	require.Error(t, err)

	assert.Nil(t, client.created)
	assert.Equal(t, 1, client.listCalls)
	assert.NotEmpty(t, f.Err())
}
