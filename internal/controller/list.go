// Package controller implements the recurring dashboard workflow: a list
// controller owning one fetched collection, a pure derived view over it, a
// single-flight mutation gateway, and a confirmation gate in front of
// destructive actions.
package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

// Item is a listable record. SearchFields returns the ordered text fields
// the substring search inspects.
type Item interface {
	ItemID() string
	ItemStatus() models.Status
	SearchFields() []string
}

// Fetcher loads one page of records for the given filter state.
type Fetcher[T Item] func(ctx context.Context, filter models.FilterState) ([]T, *models.Pagination, error)

// Snapshot is the render-facing view of a list controller.
type Snapshot[T Item] struct {
	Items      []T
	Loading    bool
	Err        string
	Filter     models.FilterState
	Pagination *models.Pagination
}

// ListController owns one fetched collection and its loading/error state.
// It re-fetches whenever the filter state changes. A failed re-fetch keeps
// the previously loaded items so the view never flashes empty.
//
// There is deliberately no debounce and no abort of superseded requests:
// rapid filter changes can complete out of order. fetchSeq/appliedSeq make
// that staleness observable without changing the behaviour.
type ListController[T Item] struct {
	mu         sync.Mutex
	fetch      Fetcher[T]
	logger     *zap.Logger
	filter     models.FilterState
	items      []T
	pagination *models.Pagination
	loading    bool
	errMsg     string
	fetchSeq   int
	appliedSeq int
}

// NewListController builds a controller around fetch with the initial
// filter state.
func NewListController[T Item](fetch Fetcher[T], logger *zap.Logger) *ListController[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListController[T]{
		fetch:  fetch,
		logger: logger,
		filter: models.NewFilterState(),
	}
}

// Snapshot returns the current render state. Items are shared read-only.
func (c *ListController[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{
		Items:      c.items,
		Loading:    c.loading,
		Err:        c.errMsg,
		Filter:     c.filter,
		Pagination: c.pagination,
	}
}

// Filter returns the current filter state.
func (c *ListController[T]) Filter() models.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Refresh performs one fetch with the current filter state.
func (c *ListController[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.fetchSeq++
	seq := c.fetchSeq
	filter := c.filter
	c.mu.Unlock()

	items, pagination, err := c.fetch(ctx, filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.appliedSeq = seq

	if err != nil {
		// Previous items stay visible; only the message changes.
		appErr := apperrors.FromError(err)
		c.errMsg = appErr.Message
		if c.errMsg == "" {
			c.errMsg = apperrors.FallbackMessage
		}
		c.logger.Warn("list_fetch_failed", zap.String("error", c.errMsg))
		return appErr
	}

	c.items = items
	c.pagination = pagination
	c.errMsg = ""
	return nil
}

// SetSearch replaces the search term, resets to page 1, and re-fetches.
func (c *ListController[T]) SetSearch(ctx context.Context, term string) error {
	c.mu.Lock()
	c.filter = c.filter.WithSearch(term)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetStatus replaces the status filter, resets to page 1, and re-fetches.
func (c *ListController[T]) SetStatus(ctx context.Context, status string) error {
	c.mu.Lock()
	c.filter = c.filter.WithStatus(status)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetServiceType replaces the category filter, resets to page 1, and
// re-fetches.
func (c *ListController[T]) SetServiceType(ctx context.Context, serviceType string) error {
	c.mu.Lock()
	c.filter = c.filter.WithServiceType(serviceType)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetPage navigates to the requested page and re-fetches without touching
// the other filter fields.
func (c *ListController[T]) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	c.filter = c.filter.WithPage(page)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Stale reports whether the most recently applied response was already
// superseded by a newer fetch when it landed.
func (c *ListController[T]) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appliedSeq < c.fetchSeq
}
