package controller

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
	"github.com/noah-isme/agrisure-console/pkg/metrics"
)

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

type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNavigator) NavigateTo(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func newTestGateway(cfg GatewayConfig) *Gateway {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewRecorder()
	}
	if cfg.Delay == nil {
		// Synchronous delay keeps tests deterministic.
		cfg.Delay = func(_ time.Duration, fn func()) { fn() }
	}
	return NewGateway(cfg)
}

func TestDispatchSingleFlightPerID(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	gw := newTestGateway(GatewayConfig{})

	slowCall := func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- gw.Dispatch(context.Background(), Mutation{ID: "abc123", Kind: KindApprove}, slowCall)
	}()

	<-started
	assert.True(t, gw.InFlight("abc123"))

	// Second trigger on the same id while the first is pending: no-op.
	err := gw.Dispatch(context.Background(), Mutation{ID: "abc123", Kind: KindApprove}, slowCall)
	require.ErrorIs(t, err, apperrors.ErrMutationInFlight)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exactly one network call must be dispatched")
	assert.False(t, gw.InFlight("abc123"))
}

func TestDispatchAllowsDistinctIDsConcurrently(t *testing.T) {
	var calls int32
	block := make(chan struct{})
	gw := newTestGateway(GatewayConfig{})

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b"} {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = gw.Dispatch(context.Background(), Mutation{ID: id, Kind: KindDelete}, func(ctx context.Context) error {
				atomic.AddInt32(&calls, 1)
				<-block
				return nil
			})
		}()
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 2
	}, time.Second, 5*time.Millisecond, "mutations for distinct ids must not block each other")
	close(block)
	wg.Wait()
}

func TestDispatchSuccessClosesGateAndRefreshes(t *testing.T) {
	gate := NewConfirmationGate("Rejected by administrator")
	gate.Open(PendingConfirmation{ItemID: "abc123", Kind: KindApprove})

	var refreshed int
	notifier := &recordingNotifier{}
	gw := newTestGateway(GatewayConfig{
		Gate:     gate,
		Refresh:  func(context.Context) { refreshed++ },
		Notifier: notifier,
	})

	err := gw.Dispatch(context.Background(), Mutation{ID: "abc123", Kind: KindApprove}, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)

	assert.False(t, gate.IsOpen())
	assert.Equal(t, 1, refreshed)
	assert.Equal(t, []string{"approved"}, notifier.successes)
}

func TestDispatchRejectFailureKeepsGateOpen(t *testing.T) {
	gate := NewConfirmationGate("Rejected by administrator")
	gate.Open(PendingConfirmation{ItemID: "abc123", Kind: KindReject})
	gate.SetReason("incomplete documents")

	notifier := &recordingNotifier{}
	gw := newTestGateway(GatewayConfig{Gate: gate, Notifier: notifier})

	err := gw.Dispatch(context.Background(), Mutation{ID: "abc123", Kind: KindReject, Reason: "incomplete documents"},
		func(context.Context) error {
			return apperrors.New("HTTP_ERROR", 500, "review service down")
		})
	require.Error(t, err)

	assert.True(t, gate.IsOpen(), "reject dialog must stay open showing the error")
	assert.Equal(t, "review service down", gate.Err())
	assert.Empty(t, notifier.alerts, "reject failures surface inline, not as alerts")
}

func TestDispatchDeleteFailureClosesGateAndAlerts(t *testing.T) {
	gate := NewConfirmationGate("")
	gate.Open(PendingConfirmation{ItemID: "ins-9", Kind: KindDelete})

	notifier := &recordingNotifier{}
	gw := newTestGateway(GatewayConfig{Gate: gate, Notifier: notifier})

	err := gw.Dispatch(context.Background(), Mutation{ID: "ins-9", Kind: KindDelete}, func(context.Context) error {
		return apperrors.New("HTTP_ERROR", 500, "delete failed upstream")
	})
	require.Error(t, err)

	assert.False(t, gate.IsOpen())
	assert.Equal(t, []string{"delete failed upstream"}, notifier.alerts)
}

func TestRevokeAllNavigatesWithoutRefresh(t *testing.T) {
	var refreshed int
	navigator := &recordingNavigator{}
	var scheduled int
	gw := newTestGateway(GatewayConfig{
		Refresh:    func(context.Context) { refreshed++ },
		Navigator:  navigator,
		LoginRoute: "/login",
		Delay: func(_ time.Duration, fn func()) {
			scheduled++
			fn()
		},
	})

	err := gw.Dispatch(context.Background(), Mutation{Kind: KindRevokeAll}, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 0, refreshed, "revoke-all must not re-fetch the list")
	assert.Equal(t, 1, scheduled, "exactly one navigation is scheduled")
	assert.Equal(t, []string{"/login"}, navigator.routes)
}

func TestRevokeAllFailureDoesNotNavigate(t *testing.T) {
	navigator := &recordingNavigator{}
	notifier := &recordingNotifier{}
	gw := newTestGateway(GatewayConfig{Navigator: navigator, Notifier: notifier})

	err := gw.Dispatch(context.Background(), Mutation{Kind: KindRevokeAll}, func(context.Context) error {
		return apperrors.New("HTTP_ERROR", 500, "revoke failed")
	})
	require.Error(t, err)
	assert.Empty(t, navigator.routes)
	assert.Equal(t, []string{"revoke failed"}, notifier.alerts)
}
