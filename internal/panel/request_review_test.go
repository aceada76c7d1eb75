package panel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type fakeRequestReviewer struct {
	requests  []models.PolicyRequest
	listCalls int

	issuedID     string
	rejectedID   string
	rejectReason string
}

func (f *fakeRequestReviewer) ListPolicyRequests(context.Context, models.FilterState) ([]models.PolicyRequest, *models.Pagination, *apperrors.Error) {
	f.listCalls++
	return f.requests, nil, nil
}

func (f *fakeRequestReviewer) IssuePolicyRequest(_ context.Context, id string) *apperrors.Error {
	f.issuedID = id
	f.drop(id)
	return nil
}

func (f *fakeRequestReviewer) RejectPolicyRequest(_ context.Context, id, reason string) *apperrors.Error {
	f.rejectedID = id
	f.rejectReason = reason
	f.drop(id)
	return nil
}

func (f *fakeRequestReviewer) FetchFarmImage(_ context.Context, id string, idx int) ([]byte, string, *apperrors.Error) {
	return []byte{0xFF, 0xD8, byte(idx)}, "image/jpeg", nil
}

func (f *fakeRequestReviewer) FetchRequestDocument(_ context.Context, id string, idx int) ([]byte, string, *apperrors.Error) {
	return []byte("%PDF-1.4"), "application/pdf", nil
}

func (f *fakeRequestReviewer) drop(id string) {
	kept := f.requests[:0]
	for _, r := range f.requests {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.requests = kept
}

func pendingRequests() []models.PolicyRequest {
	return []models.PolicyRequest{
		{ID: "req-1", FarmerName: "Ramesh Patel", CropType: "Wheat", Status: models.StatusPending, FarmImageCount: 2, DocumentCount: 1},
		{ID: "req-2", FarmerName: "Sita Devi", CropType: "Cotton", Status: models.StatusPending, FarmImageCount: 1},
	}
}

func TestRequestReviewIssueRefreshes(t *testing.T) {
	client := &fakeRequestReviewer{requests: pendingRequests()}
	notifier := &recordingNotifier{}
	p := NewRequestReviewPanel(client, notifier, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	p.RequestIssue("req-1", "Ramesh Patel / Wheat")
	require.NoError(t, p.ConfirmPending(context.Background()))

	assert.Equal(t, "req-1", client.issuedID)
	assert.Equal(t, 2, client.listCalls)
	assert.Len(t, p.Visible(), 1)
	assert.Equal(t, []string{"policy issued"}, notifier.successes)
}

func TestRequestReviewRejectUsesDefaultReason(t *testing.T) {
	client := &fakeRequestReviewer{requests: pendingRequests()}
	p := NewRequestReviewPanel(client, &recordingNotifier{}, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	p.RequestReject("req-2", "Sita Devi / Cotton")
	require.NoError(t, p.ConfirmPending(context.Background()))

	assert.Equal(t, "req-2", client.rejectedID)
	assert.Equal(t, defaultPolicyRejectionReason, client.rejectReason)
}

func TestRequestReviewPreviewLifecycle(t *testing.T) {
	client := &fakeRequestReviewer{requests: pendingRequests()}
	p := NewRequestReviewPanel(client, &recordingNotifier{}, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	req := p.Visible()[0]
	urls, err := p.LoadPreviews(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, urls, 3, "two farm images plus one document")
	assert.Equal(t, 3, p.Previews().Len())

	data, contentType, ok := p.Previews().Get(urls[0])
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", contentType)
	assert.NotEmpty(t, data)

	// Re-expanding the same row replaces its previews instead of leaking.
	again, err := p.LoadPreviews(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, again, 3)
	assert.Equal(t, 3, p.Previews().Len())
	_, _, ok = p.Previews().Get(urls[0])
	assert.False(t, ok, "old handle was released")
}

func TestRequestReviewReleasesPreviewsWhenRowLeaves(t *testing.T) {
	client := &fakeRequestReviewer{requests: pendingRequests()}
	p := NewRequestReviewPanel(client, &recordingNotifier{}, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	reqs := p.Visible()
	_, err := p.LoadPreviews(context.Background(), reqs[0])
	require.NoError(t, err)
	_, err = p.LoadPreviews(context.Background(), reqs[1])
	require.NoError(t, err)
	require.Equal(t, 4, p.Previews().Len())

	// Issuing req-1 removes it from the backend list; the refresh drops its
	// previews but keeps req-2's.
	p.RequestIssue("req-1", "Ramesh Patel / Wheat")
	require.NoError(t, p.ConfirmPending(context.Background()))

	assert.Equal(t, 1, p.Previews().Len())
}

func TestRequestReviewCloseReleasesEverything(t *testing.T) {
	client := &fakeRequestReviewer{requests: pendingRequests()}
	p := NewRequestReviewPanel(client, &recordingNotifier{}, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	_, err := p.LoadPreviews(context.Background(), p.Visible()[0])
	require.NoError(t, err)
	require.NotZero(t, p.Previews().Len())

	p.Close()
	assert.Zero(t, p.Previews().Len())
}
