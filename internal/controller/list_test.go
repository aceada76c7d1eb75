package controller

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type recordingFetcher struct {
	mu      sync.Mutex
	filters []models.FilterState
	items   []models.Insurer
	err     error
}

func (f *recordingFetcher) fetch(ctx context.Context, filter models.FilterState) ([]models.Insurer, *models.Pagination, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.items, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: len(f.items)}, nil
}

func (f *recordingFetcher) lastFilter() models.FilterState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filters[len(f.filters)-1]
}

func TestRefreshReplacesItems(t *testing.T) {
	fetcher := &recordingFetcher{items: sampleInsurers()}
	ctrl := NewListController(fetcher.fetch, zap.NewNop())

	require.NoError(t, ctrl.Refresh(context.Background()))

	snap := ctrl.Snapshot()
	assert.Len(t, snap.Items, 4)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err)
	require.NotNil(t, snap.Pagination)
	assert.Equal(t, 4, snap.Pagination.TotalCount)
}

func TestFailedRefreshKeepsPreviousItems(t *testing.T) {
	fetcher := &recordingFetcher{items: sampleInsurers()}
	ctrl := NewListController(fetcher.fetch, zap.NewNop())
	require.NoError(t, ctrl.Refresh(context.Background()))

	fetcher.err = apperrors.New("HTTP_ERROR", 500, "insurer service unavailable")
	err := ctrl.Refresh(context.Background())
	require.Error(t, err)

	snap := ctrl.Snapshot()
	assert.Len(t, snap.Items, 4, "previously loaded items must stay visible")
	assert.Equal(t, "insurer service unavailable", snap.Err)
	assert.False(t, snap.Loading)
}

func TestFailedRefreshWithUntypedErrorSetsNonEmptyMessage(t *testing.T) {
	fetcher := &recordingFetcher{err: context.DeadlineExceeded}
	ctrl := NewListController(fetcher.fetch, zap.NewNop())

	require.Error(t, ctrl.Refresh(context.Background()))
	assert.NotEmpty(t, ctrl.Snapshot().Err)
}

func TestSearchChangeResetsPaginationBeforeFetch(t *testing.T) {
	fetcher := &recordingFetcher{items: sampleInsurers()}
	ctrl := NewListController(fetcher.fetch, zap.NewNop())

	require.NoError(t, ctrl.SetPage(context.Background(), 3))
	require.Equal(t, 3, fetcher.lastFilter().Page)

	require.NoError(t, ctrl.SetSearch(context.Background(), "wheat"))

	got := fetcher.lastFilter()
	assert.Equal(t, 1, got.Page, "page must reset to 1 before the fetch fires")
	assert.Equal(t, "wheat", got.Search)
}

func TestStatusAndServiceTypeChangesResetPagination(t *testing.T) {
	fetcher := &recordingFetcher{items: sampleInsurers()}
	ctrl := NewListController(fetcher.fetch, zap.NewNop())

	require.NoError(t, ctrl.SetPage(context.Background(), 2))
	require.NoError(t, ctrl.SetStatus(context.Background(), "approved"))
	assert.Equal(t, 1, fetcher.lastFilter().Page)

	require.NoError(t, ctrl.SetPage(context.Background(), 5))
	require.NoError(t, ctrl.SetServiceType(context.Background(), "crop"))
	assert.Equal(t, 1, fetcher.lastFilter().Page)
}

func TestPageNavigationKeepsFilters(t *testing.T) {
	fetcher := &recordingFetcher{items: sampleInsurers()}
	ctrl := NewListController(fetcher.fetch, zap.NewNop())

	require.NoError(t, ctrl.SetSearch(context.Background(), "agri"))
	require.NoError(t, ctrl.SetPage(context.Background(), 2))

	got := fetcher.lastFilter()
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, "agri", got.Search)
}
