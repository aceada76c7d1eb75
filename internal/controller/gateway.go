package controller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
	"github.com/noah-isme/agrisure-console/pkg/metrics"
)

// Mutation describes one user-confirmed state change.
type Mutation struct {
	ID     string
	Kind   Kind
	Reason string
}

// Call performs the outbound request for a mutation.
type Call func(ctx context.Context) error

// Notifier surfaces mutation outcomes to the user.
type Notifier interface {
	Success(message string)
	Alert(message string)
}

// Navigator performs route changes (used by the revoke-all flow).
type Navigator interface {
	NavigateTo(route string)
}

// revokeAllKey stands in for an item id: revoking everything targets the
// caller's own account, not a listed row.
const revokeAllKey = "__revoke_all__"

// Gateway dispatches exactly one state-changing call per confirmed action.
// The single-flight guard is per entity id, not a global lock: a duplicate
// dispatch for an id already in flight is a no-op, while mutations on other
// ids proceed.
type Gateway struct {
	mu       sync.Mutex
	inFlight map[string]struct{}

	gate           *ConfirmationGate
	refresh        func(ctx context.Context)
	notifier       Notifier
	navigator      Navigator
	loginRoute     string
	revokeAllDelay time.Duration
	delay          func(d time.Duration, fn func())
	logger         *zap.Logger
	metrics        *metrics.Recorder
}

// GatewayConfig wires a Gateway's collaborators.
type GatewayConfig struct {
	Gate           *ConfirmationGate
	Refresh        func(ctx context.Context)
	Notifier       Notifier
	Navigator      Navigator
	LoginRoute     string
	RevokeAllDelay time.Duration
	// Delay schedules the deferred revoke-all navigation; tests inject a
	// synchronous version. Defaults to time.AfterFunc.
	Delay   func(d time.Duration, fn func())
	Logger  *zap.Logger
	Metrics *metrics.Recorder
}

// NewGateway constructs a gateway with sane defaults.
func NewGateway(cfg GatewayConfig) *Gateway {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Delay == nil {
		cfg.Delay = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	if cfg.RevokeAllDelay <= 0 {
		cfg.RevokeAllDelay = time.Second
	}
	if cfg.LoginRoute == "" {
		cfg.LoginRoute = "/login"
	}
	if cfg.Refresh == nil {
		cfg.Refresh = func(context.Context) {}
	}
	return &Gateway{
		inFlight:       make(map[string]struct{}),
		gate:           cfg.Gate,
		refresh:        cfg.Refresh,
		notifier:       cfg.Notifier,
		navigator:      cfg.Navigator,
		loginRoute:     cfg.LoginRoute,
		revokeAllDelay: cfg.RevokeAllDelay,
		delay:          cfg.Delay,
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
	}
}

// InFlight reports whether a mutation for id is currently pending; the
// triggering control must be disabled while this is true.
func (g *Gateway) InFlight(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.inFlight[g.key(id)]
	return ok
}

// Dispatch runs call under the single-flight guard for m.ID. A duplicate
// dispatch while one is in flight does nothing and reports
// ErrMutationInFlight.
func (g *Gateway) Dispatch(ctx context.Context, m Mutation, call Call) error {
	key := g.key(m.ID)

	g.mu.Lock()
	if _, dup := g.inFlight[key]; dup {
		g.mu.Unlock()
		return apperrors.ErrMutationInFlight
	}
	g.inFlight[key] = struct{}{}
	g.mu.Unlock()

	err := call(ctx)

	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()

	if err != nil {
		g.fail(m, err)
		return err
	}

	g.succeed(ctx, m)
	return nil
}

func (g *Gateway) succeed(ctx context.Context, m Mutation) {
	g.metrics.ObserveMutation(string(m.Kind), "success")
	if g.gate != nil {
		g.gate.Close()
	}

	if m.Kind == KindRevokeAll {
		// The acting session is gone too; re-fetching would 401. Send the
		// user back to login after a beat instead.
		if g.navigator != nil {
			nav := g.navigator
			route := g.loginRoute
			g.delay(g.revokeAllDelay, func() { nav.NavigateTo(route) })
		}
		if g.notifier != nil {
			g.notifier.Success("signed out everywhere")
		}
		return
	}

	g.refresh(ctx)
	if g.notifier != nil {
		g.notifier.Success(successMessage(m.Kind))
	}
}

func (g *Gateway) fail(m Mutation, err error) {
	g.metrics.ObserveMutation(string(m.Kind), "failure")
	message := apperrors.FromError(err).Message
	if message == "" {
		message = apperrors.FallbackMessage
	}
	g.logger.Warn("mutation_failed",
		zap.String("kind", string(m.Kind)),
		zap.String("id", m.ID),
		zap.String("error", message),
	)

	// Reject dialogs stay open with the error inline so the typed reason
	// survives; everything else closes and raises a blocking alert.
	if m.Kind == KindReject && g.gate != nil {
		g.gate.Fail(message)
		return
	}
	if g.gate != nil {
		g.gate.Close()
	}
	if g.notifier != nil {
		g.notifier.Alert(message)
	}
}

func (g *Gateway) key(id string) string {
	if id == "" {
		return revokeAllKey
	}
	return id
}

func successMessage(kind Kind) string {
	switch kind {
	case KindApprove:
		return "approved"
	case KindReject:
		return "rejected"
	case KindDelete:
		return "deleted"
	case KindIssue:
		return "policy issued"
	case KindRevokeSession:
		return "session revoked"
	default:
		return "done"
	}
}
