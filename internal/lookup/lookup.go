// Package lookup wraps the public geo data services the signup and farmer
// forms use to populate location dropdowns. All lookups are best-effort:
// failures log a warning and return empty data, never an error, so a dead
// third-party service cannot block a form.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/agrisure-console/pkg/config"
	"github.com/noah-isme/agrisure-console/pkg/metrics"
)

// Location is one postal-code lookup result.
type Location struct {
	State    string
	District string
	Tehsil   string
}

// Client queries the configured lookup services.
type Client struct {
	cfg        config.LookupConfig
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Recorder
}

// New builds a lookup client.
func New(cfg config.LookupConfig, l *zap.Logger, rec *metrics.Recorder) *Client {
	if l == nil {
		l = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     l,
		metrics:    rec,
	}
}

// States returns the list of states, or empty on any failure.
func (c *Client) States(ctx context.Context) []string {
	if c.cfg.StatesURL == "" {
		return nil
	}
	var doc struct {
		States []struct {
			Name string `json:"state_name"`
		} `json:"states"`
	}
	if !c.get(ctx, c.cfg.StatesURL+"/states", &doc) {
		return nil
	}
	names := make([]string, 0, len(doc.States))
	for _, s := range doc.States {
		names = append(names, s.Name)
	}
	return names
}

// Districts returns the districts of a state, or empty on any failure.
func (c *Client) Districts(ctx context.Context, state string) []string {
	if c.cfg.StatesURL == "" || state == "" {
		return nil
	}
	var doc struct {
		Districts []struct {
			Name string `json:"district_name"`
		} `json:"districts"`
	}
	if !c.get(ctx, c.cfg.StatesURL+"/districts/"+url.PathEscape(state), &doc) {
		return nil
	}
	names := make([]string, 0, len(doc.Districts))
	for _, d := range doc.Districts {
		names = append(names, d.Name)
	}
	return names
}

// ByPincode resolves a postal code to its location, or nil on any failure.
func (c *Client) ByPincode(ctx context.Context, pin string) *Location {
	if c.cfg.PincodeURL == "" || pin == "" {
		return nil
	}
	var doc []struct {
		Status     string `json:"Status"`
		PostOffice []struct {
			State    string `json:"State"`
			District string `json:"District"`
			Block    string `json:"Block"`
		} `json:"PostOffice"`
	}
	if !c.get(ctx, c.cfg.PincodeURL+"/"+url.PathEscape(pin), &doc) {
		return nil
	}
	if len(doc) == 0 || doc[0].Status != "Success" || len(doc[0].PostOffice) == 0 {
		return nil
	}
	po := doc[0].PostOffice[0]
	return &Location{State: po.State, District: po.District, Tehsil: po.Block}
}

// Tehsils returns the tehsils of a district, or empty on any failure.
func (c *Client) Tehsils(ctx context.Context, district string) []string {
	return c.namedList(ctx, "tehsils", district)
}

// Villages returns the villages of a tehsil, or empty on any failure.
func (c *Client) Villages(ctx context.Context, tehsil string) []string {
	return c.namedList(ctx, "villages", tehsil)
}

func (c *Client) namedList(ctx context.Context, kind, parent string) []string {
	if c.cfg.TehsilURL == "" || parent == "" {
		return nil
	}
	var names []string
	if !c.get(ctx, fmt.Sprintf("%s/%s/%s", c.cfg.TehsilURL, kind, url.PathEscape(parent)), &names) {
		return nil
	}
	return names
}

// Prefetch warms states and the districts of the given state in parallel.
// Individual failures degrade to empty slices like the direct calls do.
func (c *Client) Prefetch(ctx context.Context, state string) (states, districts []string) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		states = c.States(gctx)
		return nil
	})
	g.Go(func() error {
		districts = c.Districts(gctx, state)
		return nil
	})
	_ = g.Wait()
	return states, districts
}

// get performs one best-effort GET, reporting success. Any failure is logged
// and counted, then swallowed.
func (c *Client) get(ctx context.Context, target string, out interface{}) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		c.fallback("build request", target, err)
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.fallback("request", target, err)
		return false
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		c.fallback("status", target, fmt.Errorf("unexpected status %d", resp.StatusCode))
		return false
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.fallback("read", target, err)
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.fallback("decode", target, err)
		return false
	}
	return true
}

func (c *Client) fallback(stage, target string, err error) {
	c.metrics.ObserveLookupFallback()
	c.logger.Warn("lookup_fallback",
		zap.String("stage", stage),
		zap.String("url", target),
		zap.Error(err),
	)
}
