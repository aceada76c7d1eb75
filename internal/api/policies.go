package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type wirePolicy struct {
	ID           string  `json:"id"`
	AltID        string  `json:"_id"`
	PolicyNumber string  `json:"policyNumber"`
	CropType     string  `json:"cropType"`
	SumInsured   float64 `json:"sumInsured"`
	Premium      float64 `json:"premium"`
	Status       string  `json:"status"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	InsurerName  string  `json:"insurerName"`
}

func (w wirePolicy) toModel() models.Policy {
	return models.Policy{
		ID:           canonicalID(w.ID, w.AltID),
		PolicyNumber: w.PolicyNumber,
		CropType:     w.CropType,
		SumInsured:   w.SumInsured,
		Premium:      w.Premium,
		Status:       parseStatus(w.Status),
		StartDate:    parseTime(w.StartDate),
		EndDate:      parseTime(w.EndDate),
		InsurerName:  w.InsurerName,
	}
}

// ListFarmerPolicies fetches the signed-in farmer's policies.
// GET /farmer/policies
func (c *Client) ListFarmerPolicies(ctx context.Context) ([]models.Policy, *apperrors.Error) {
	body, appErr := c.do(ctx, http.MethodGet, "farmer.policies.list", "/farmer/policies", nil, nil)
	if appErr != nil {
		return nil, appErr
	}

	raw, _ := pickList(body, "data", "policies")
	if raw == nil {
		return []models.Policy{}, nil
	}

	var wires []wirePolicy
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to decode policy list")
	}

	policies := make([]models.Policy, 0, len(wires))
	for _, w := range wires {
		policies = append(policies, w.toModel())
	}
	return policies, nil
}

// GetFarmerPolicy fetches one policy in detail. GET /farmer/policies/:id
func (c *Client) GetFarmerPolicy(ctx context.Context, id string) (*models.Policy, *apperrors.Error) {
	body, appErr := c.do(ctx, http.MethodGet, "farmer.policies.get", pathf("/farmer/policies/%s", id), nil, nil)
	if appErr != nil {
		return nil, appErr
	}

	var doc struct {
		Data   *wirePolicy `json:"data"`
		Policy *wirePolicy `json:"policy"`
	}
	if err := json.Unmarshal(body, &doc); err == nil {
		if doc.Data != nil {
			policy := doc.Data.toModel()
			return &policy, nil
		}
		if doc.Policy != nil {
			policy := doc.Policy.toModel()
			return &policy, nil
		}
	}

	var w wirePolicy
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to decode policy")
	}
	policy := w.toModel()
	return &policy, nil
}
