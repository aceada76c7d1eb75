package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type fakeFarmerClient struct {
	created []models.FarmerDraft
	updated map[string]models.FarmerDraft
	err     *apperrors.Error
}

func (c *fakeFarmerClient) CreateFarmer(ctx context.Context, draft models.FarmerDraft) *apperrors.Error {
	if c.err != nil {
		return c.err
	}
	c.created = append(c.created, draft)
	return nil
}

func (c *fakeFarmerClient) UpdateFarmer(ctx context.Context, id string, draft models.FarmerDraft) *apperrors.Error {
	if c.err != nil {
		return c.err
	}
	if c.updated == nil {
		c.updated = make(map[string]models.FarmerDraft)
	}
	c.updated[id] = draft
	return nil
}

func fillFarmerForm(f *FarmerUpsertForm) {
	f.SetField(FarmerFullName, "Sita Devi")
	f.SetField(FarmerEmail, "sita@example.com")
	f.SetField(FarmerPhone, "9812345670")
	f.SetField(FarmerAadhaar, "123412341234")
	f.SetField(FarmerAddress, "Ward 2, Khargone")
	f.SetField(FarmerState, "Madhya Pradesh")
	f.SetField(FarmerDistrict, "Khargone")
	f.SetField(FarmerPincode, "451001")
}

func TestFarmerFormStepGating(t *testing.T) {
	f := NewFarmerUpsertForm(&fakeFarmerClient{}, zap.NewNop())

	require.False(t, f.Next())
	assert.Equal(t, 1, f.Step())
	assert.Equal(t, "farmer name is required", f.Err())

	f.SetField(FarmerFullName, "Sita Devi")
	f.SetField(FarmerEmail, "not-an-email")
	require.False(t, f.Next())
	assert.Equal(t, "enter a valid email address", f.Err())
}

func TestFarmerFormCreate(t *testing.T) {
	client := &fakeFarmerClient{}
	f := NewFarmerUpsertForm(client, zap.NewNop())
	fillFarmerForm(f)

	require.True(t, f.Next())
	require.NoError(t, f.Submit(context.Background()))

	require.Len(t, client.created, 1)
	assert.Equal(t, "123412341234", client.created[0].AadhaarNumber)
	assert.True(t, f.Submitted())
}

func TestFarmerFormEditPrePopulatesAndUpdates(t *testing.T) {
	client := &fakeFarmerClient{}
	existing := models.Farmer{
		ID:            "farmer-7",
		FullName:      "Sita Devi",
		Email:         "sita@example.com",
		Phone:         "9812345670",
		AadhaarNumber: "123412341234",
		Address:       "Ward 2, Khargone",
		State:         "Madhya Pradesh",
		District:      "Khargone",
		Pincode:       "451001",
	}
	f := NewFarmerEditForm(client, existing, zap.NewNop())

	f.SetField(FarmerPhone, "9800000001")
	require.NoError(t, f.Submit(context.Background()))

	draft, ok := client.updated["farmer-7"]
	require.True(t, ok)
	assert.Equal(t, "9800000001", draft.Phone)
	assert.Equal(t, "Sita Devi", draft.FullName)
	assert.Empty(t, client.created)
}

func TestFarmerFormSubmitFailureSurfacesMessage(t *testing.T) {
	client := &fakeFarmerClient{err: apperrors.New("HTTP_ERROR", 500, "farmer service down")}
	f := NewFarmerUpsertForm(client, zap.NewNop())
	fillFarmerForm(f)

	err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "farmer service down", f.Err())
	assert.False(t, f.Submitted())
}
