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

type wirePolicyRequest struct {
	ID           string  `json:"id"`
	AltID        string  `json:"_id"`
	FarmerName   string  `json:"farmerName"`
	CropType     string  `json:"cropType"`
	AreaHectares float64 `json:"areaHectares"`
	Status       string  `json:"status"`
	Reason       string  `json:"rejectionReason"`
	SubmittedAt  string  `json:"createdAt"`
	FarmImages   []struct {
		Index int `json:"index"`
	} `json:"farmImages"`
	Documents []struct {
		Index int `json:"index"`
	} `json:"documents"`
}

func (w wirePolicyRequest) toModel() models.PolicyRequest {
	return models.PolicyRequest{
		ID:             canonicalID(w.ID, w.AltID),
		FarmerName:     w.FarmerName,
		CropType:       w.CropType,
		AreaHectares:   w.AreaHectares,
		Status:         parseStatus(w.Status),
		Reason:         w.Reason,
		SubmittedAt:    parseTime(w.SubmittedAt),
		FarmImageCount: len(w.FarmImages),
		DocumentCount:  len(w.Documents),
	}
}

// ListPolicyRequests fetches policy requests visible to the caller's role.
// GET /policy-requests?page=&limit=&status=&search=
func (c *Client) ListPolicyRequests(ctx context.Context, filter models.FilterState) ([]models.PolicyRequest, *models.Pagination, *apperrors.Error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	query.Set("limit", strconv.Itoa(filter.PageSize))
	if !models.IsWildcard(filter.Status) {
		query.Set("status", filter.Status)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	body, appErr := c.do(ctx, http.MethodGet, "policy-requests.list", "/policy-requests", query, nil)
	if appErr != nil {
		return nil, nil, appErr
	}

	raw, pagination := pickList(body, "data", "requests", "policyRequests")
	if raw == nil {
		return []models.PolicyRequest{}, pagination, nil
	}

	var wires []wirePolicyRequest
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to decode policy requests")
	}

	requests := make([]models.PolicyRequest, 0, len(wires))
	for _, w := range wires {
		requests = append(requests, w.toModel())
	}
	return requests, pagination, nil
}

// SubmitPolicyRequest uploads a new policy request as a multipart form with
// farmImages[] and documents[] attachments. POST /policy-requests
func (c *Client) SubmitPolicyRequest(ctx context.Context, draft models.PolicyRequestDraft) *apperrors.Error {
	fields := map[string]string{
		"insurerId":    draft.InsurerID,
		"cropType":     draft.CropType,
		"areaHectares": strconv.FormatFloat(draft.AreaHectares, 'f', -1, 64),
		"sowingDate":   draft.SowingDate,
		"address":      draft.Address,
		"state":        draft.State,
		"district":     draft.District,
		"pincode":      draft.Pincode,
	}

	body, contentType, err := encodeMultipart(fields, map[string][]models.Attachment{
		"farmImages": draft.FarmImages,
		"documents":  draft.Documents,
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to encode upload")
	}

	_, appErr := c.doMultipart(ctx, "policy-requests.submit", "/policy-requests", body, contentType)
	return appErr
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// RejectPolicyRequest declines a request with a reason.
// POST /policy-requests/:id/reject
func (c *Client) RejectPolicyRequest(ctx context.Context, id, reason string) *apperrors.Error {
	_, appErr := c.do(ctx, http.MethodPost, "policy-requests.reject", pathf("/policy-requests/%s/reject", id), nil, rejectRequest{Reason: reason})
	return appErr
}

// IssuePolicyRequest converts an approved request into a policy.
// POST /policy-requests/:id/issue
func (c *Client) IssuePolicyRequest(ctx context.Context, id string) *apperrors.Error {
	_, appErr := c.do(ctx, http.MethodPost, "policy-requests.issue", pathf("/policy-requests/%s/issue", id), nil, nil)
	return appErr
}

// FetchFarmImage downloads one protected farm image.
// GET /policy-requests/:id/farm-images/:idx
func (c *Client) FetchFarmImage(ctx context.Context, id string, idx int) ([]byte, string, *apperrors.Error) {
	return c.fetchBinary(ctx, "policy-requests.farm-image", pathf("/policy-requests/%s/farm-images/", id)+strconv.Itoa(idx))
}

// FetchRequestDocument downloads one protected document.
// GET /policy-requests/:id/documents/:idx
func (c *Client) FetchRequestDocument(ctx context.Context, id string, idx int) ([]byte, string, *apperrors.Error) {
	return c.fetchBinary(ctx, "policy-requests.document", pathf("/policy-requests/%s/documents/", id)+strconv.Itoa(idx))
}
