package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type wireFarmer struct {
	ID            string `json:"id"`
	AltID         string `json:"_id"`
	FullName      string `json:"fullName"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	AadhaarNumber string `json:"aadhaarNumber"`
	Address       string `json:"address"`
	State         string `json:"state"`
	District      string `json:"district"`
	Pincode       string `json:"pincode"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

func (w wireFarmer) toModel() models.Farmer {
	return models.Farmer{
		ID:            canonicalID(w.ID, w.AltID),
		FullName:      firstNonEmpty(w.FullName, w.Name),
		Email:         w.Email,
		Phone:         w.Phone,
		AadhaarNumber: w.AadhaarNumber,
		Address:       w.Address,
		State:         w.State,
		District:      w.District,
		Pincode:       w.Pincode,
		Status:        parseStatus(w.Status),
		CreatedAt:     parseTime(w.CreatedAt),
	}
}

type farmerPayload struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	AadhaarNumber string `json:"aadhaarNumber"`
	Address       string `json:"address"`
	State         string `json:"state"`
	District      string `json:"district"`
	Pincode       string `json:"pincode"`
}

func toFarmerPayload(draft models.FarmerDraft) farmerPayload {
	return farmerPayload{
		FullName:      draft.FullName,
		Email:         draft.Email,
		Phone:         draft.Phone,
		AadhaarNumber: draft.AadhaarNumber,
		Address:       draft.Address,
		State:         draft.State,
		District:      draft.District,
		Pincode:       draft.Pincode,
	}
}

// ListFarmers fetches the insurer's farmer directory. GET /insurer/farmers
func (c *Client) ListFarmers(ctx context.Context) ([]models.Farmer, *apperrors.Error) {
	body, appErr := c.do(ctx, http.MethodGet, "insurer.farmers.list", "/insurer/farmers", nil, nil)
	if appErr != nil {
		return nil, appErr
	}

	raw, _ := pickList(body, "data", "farmers")
	if raw == nil {
		return []models.Farmer{}, nil
	}

	var wires []wireFarmer
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to decode farmer list")
	}

	farmers := make([]models.Farmer, 0, len(wires))
	for _, w := range wires {
		farmers = append(farmers, w.toModel())
	}
	return farmers, nil
}

// CreateFarmer registers a farmer on behalf of the insurer.
// POST /insurer/farmers
func (c *Client) CreateFarmer(ctx context.Context, draft models.FarmerDraft) *apperrors.Error {
	_, appErr := c.do(ctx, http.MethodPost, "insurer.farmers.create", "/insurer/farmers", nil, toFarmerPayload(draft))
	return appErr
}

// UpdateFarmer edits an existing farmer record. PUT /insurer/farmers/:id
func (c *Client) UpdateFarmer(ctx context.Context, id string, draft models.FarmerDraft) *apperrors.Error {
	_, appErr := c.do(ctx, http.MethodPut, "insurer.farmers.update", pathf("/insurer/farmers/%s", id), nil, toFarmerPayload(draft))
	return appErr
}
