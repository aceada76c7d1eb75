package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type wireInsurer struct {
	ID          string `json:"id"`
	AltID       string `json:"_id"`
	CompanyName string `json:"companyName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ServiceType string `json:"serviceType"`
	LicenseNo   string `json:"licenseNumber"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

func (w wireInsurer) toModel() models.Insurer {
	return models.Insurer{
		ID:          canonicalID(w.ID, w.AltID),
		CompanyName: firstNonEmpty(w.CompanyName, w.Name),
		Email:       w.Email,
		Phone:       w.Phone,
		ServiceType: w.ServiceType,
		LicenseNo:   w.LicenseNo,
		Status:      parseStatus(w.Status),
		CreatedAt:   parseTime(w.CreatedAt),
	}
}

// ListInsurers fetches the paged insurer collection for the admin dashboard.
// GET /admin/insurers?page=&limit=&status=&serviceType=&search=
func (c *Client) ListInsurers(ctx context.Context, filter models.FilterState) ([]models.Insurer, *models.Pagination, *apperrors.Error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	query.Set("limit", strconv.Itoa(filter.PageSize))
	if !models.IsWildcard(filter.Status) {
		query.Set("status", filter.Status)
	}
	if filter.ServiceType != "" {
		query.Set("serviceType", filter.ServiceType)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	body, appErr := c.do(ctx, http.MethodGet, "admin.insurers.list", "/admin/insurers", query, nil)
	if appErr != nil {
		return nil, nil, appErr
	}
	return decodeInsurers(body)
}

// ListApprovedInsurers fetches the approved insurer directory shown to
// farmers. GET /admin/insurers/approved
func (c *Client) ListApprovedInsurers(ctx context.Context) ([]models.Insurer, *apperrors.Error) {
	body, appErr := c.do(ctx, http.MethodGet, "admin.insurers.approved", "/admin/insurers/approved", nil, nil)
	if appErr != nil {
		return nil, appErr
	}
	insurers, _, decodeErr := decodeInsurers(body)
	return insurers, decodeErr
}

// DeleteInsurer removes an insurer. DELETE /admin/insurers/:id
func (c *Client) DeleteInsurer(ctx context.Context, id string) *apperrors.Error {
	_, appErr := c.do(ctx, http.MethodDelete, "admin.insurers.delete", pathf("/admin/insurers/%s", id), nil, nil)
	return appErr
}

func decodeInsurers(body []byte) ([]models.Insurer, *models.Pagination, *apperrors.Error) {
	raw, pagination := pickList(body, "data", "insurers", "serviceProviders")
	if raw == nil {
		return []models.Insurer{}, pagination, nil
	}

	var wires []wireInsurer
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to decode insurer list")
	}

	insurers := make([]models.Insurer, 0, len(wires))
	for _, w := range wires {
		insurers = append(insurers, w.toModel())
	}
	return insurers, pagination, nil
}
