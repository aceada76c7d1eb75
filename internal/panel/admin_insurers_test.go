package panel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/agrisure-console/internal/api"
	"github.com/noah-isme/agrisure-console/internal/controller"
	"github.com/noah-isme/agrisure-console/pkg/config"
)

// insurerBackend is a gin stand-in for the admin insurer endpoints.
type insurerBackend struct {
	mu         sync.Mutex
	insurers   []gin.H
	listCalls  int
	deleted    []string
	failList   bool
	failDelete int
}

func (b *insurerBackend) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/admin/insurers", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.listCalls++
		if b.failList {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "insurer service unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"data":       b.insurers,
			"pagination": gin.H{"page": 1, "page_size": 20, "total_count": len(b.insurers), "total_pages": 1},
		})
	})

	r.DELETE("/admin/insurers/:id", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failDelete != 0 {
			c.JSON(b.failDelete, gin.H{"message": "cannot delete insurer with active policies"})
			return
		}
		id := c.Param("id")
		b.deleted = append(b.deleted, id)
		kept := b.insurers[:0]
		for _, ins := range b.insurers {
			if ins["id"] != id {
				kept = append(kept, ins)
			}
		}
		b.insurers = kept
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	})

	return r
}

func (b *insurerBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listCalls
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	alerts    []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Alert(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, message)
}

func newBackendClient(t *testing.T, r *gin.Engine) *api.Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api.New(config.APIConfig{
		BaseURL:       srv.URL,
		Timeout:       5 * time.Second,
		UploadTimeout: 5 * time.Second,
	}, nil, nil, nil)
}

func seedInsurers() []gin.H {
	return []gin.H{
		{"id": "ins-1", "companyName": "Kisan Suraksha", "licenseNumber": "LIC-100", "status": "APPROVED"},
		{"id": "ins-2", "companyName": "Bharat AgriShield", "licenseNumber": "LIC-200", "status": "PENDING"},
	}
}

func TestInsurerAdminPanelOpenLoadsList(t *testing.T) {
	backend := &insurerBackend{insurers: seedInsurers()}
	p := NewInsurerAdminPanel(newBackendClient(t, backend.router()), &recordingNotifier{}, nil, nil)

	require.NoError(t, p.Open(context.Background()))

	snap := p.List().Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Kisan Suraksha", snap.Items[0].CompanyName)
	require.NotNil(t, snap.Pagination)
	assert.Equal(t, 2, snap.Pagination.TotalCount)
}

func TestInsurerAdminPanelDeleteRefreshesList(t *testing.T) {
	backend := &insurerBackend{insurers: seedInsurers()}
	notifier := &recordingNotifier{}
	p := NewInsurerAdminPanel(newBackendClient(t, backend.router()), notifier, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	p.RequestDelete("ins-2", "Bharat AgriShield")
	require.True(t, p.Gate().IsOpen())
	require.NoError(t, p.ConfirmPending(context.Background()))

	assert.Equal(t, []string{"ins-2"}, backend.deleted)
	assert.False(t, p.Gate().IsOpen(), "gate closes after a successful delete")

	snap := p.List().Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "ins-1", snap.Items[0].ID)
	assert.Equal(t, []string{"deleted"}, notifier.successes)
}

func TestInsurerAdminPanelDeleteFailureAlertsAndKeepsRow(t *testing.T) {
	backend := &insurerBackend{insurers: seedInsurers(), failDelete: http.StatusBadRequest}
	notifier := &recordingNotifier{}
	p := NewInsurerAdminPanel(newBackendClient(t, backend.router()), notifier, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	p.RequestDelete("ins-1", "Kisan Suraksha")
	err := p.ConfirmPending(context.Background())
	require.Error(t, err)

	assert.False(t, p.Gate().IsOpen())
	assert.Equal(t, []string{"cannot delete insurer with active policies"}, notifier.alerts)
	assert.Len(t, p.List().Snapshot().Items, 2)
}

func TestInsurerAdminPanelFailedRefreshKeepsItems(t *testing.T) {
	backend := &insurerBackend{insurers: seedInsurers()}
	p := NewInsurerAdminPanel(newBackendClient(t, backend.router()), &recordingNotifier{}, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	backend.mu.Lock()
	backend.failList = true
	backend.mu.Unlock()

	err := p.List().SetSearch(context.Background(), "kisan")
	require.Error(t, err)

	snap := p.List().Snapshot()
	assert.Len(t, snap.Items, 2, "previous items survive a failed re-fetch")
	assert.Equal(t, "insurer service unavailable", snap.Err)
}

func TestInsurerAdminPanelVisibleAppliesLocalPredicates(t *testing.T) {
	backend := &insurerBackend{insurers: seedInsurers()}
	p := NewInsurerAdminPanel(newBackendClient(t, backend.router()), &recordingNotifier{}, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	visible := p.Visible()
	require.Len(t, visible, 2)

	// The stub ignores query parameters, so the local predicate does the
	// narrowing here.
	snap := p.List().Snapshot()
	narrowed := controller.Visible(snap.Items, "agrishield", "all")
	require.Len(t, narrowed, 1)
	assert.Equal(t, "ins-2", narrowed[0].ID)
}

func TestInsurerAdminPanelConfirmWithoutPendingIsNoop(t *testing.T) {
	backend := &insurerBackend{insurers: seedInsurers()}
	p := NewInsurerAdminPanel(newBackendClient(t, backend.router()), &recordingNotifier{}, nil, nil)
	require.NoError(t, p.Open(context.Background()))

	before := backend.calls()
	require.NoError(t, p.ConfirmPending(context.Background()))
	assert.Empty(t, backend.deleted)
	assert.Equal(t, before, backend.calls())
}
