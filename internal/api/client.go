// Package api implements the typed REST client for the AgriSure backend.
// Every operation maps to one documented endpoint; heterogeneous payload
// shapes are normalised here so the rest of the console never branches on
// wire format.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/pkg/config"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
	"github.com/noah-isme/agrisure-console/pkg/logger"
	"github.com/noah-isme/agrisure-console/pkg/metrics"
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// string means the call goes out unauthenticated (signup, public lookups).
type TokenSource interface {
	Authorization() string
}

// TokenSourceFunc allows plain functions as token sources.
type TokenSourceFunc func() string

// Authorization implements TokenSource.
func (f TokenSourceFunc) Authorization() string { return f() }

// Client talks to the AgriSure backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	uploader   *http.Client
	token      TokenSource
	logger     *zap.Logger
	metrics    *metrics.Recorder
}

// New constructs a Client from configuration. Uploads get their own client
// with a longer timeout so large multipart bodies do not trip the default.
func New(cfg config.APIConfig, token TokenSource, l *zap.Logger, rec *metrics.Recorder) *Client {
	if l == nil {
		l = zap.NewNop()
	}
	if token == nil {
		token = TokenSourceFunc(func() string { return "" })
	}

	transport := logger.NewRoundTripper(nil, l)

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		uploader: &http.Client{
			Timeout:   cfg.UploadTimeout,
			Transport: transport,
		},
		token:   token,
		logger:  l,
		metrics: rec,
	}
}

// do performs one backend call and returns the raw response body. All error
// paths come back as typed *apperrors.Error; nothing escapes unwrapped.
func (c *Client) do(ctx context.Context, method, operation, path string, query url.Values, body interface{}) ([]byte, *apperrors.Error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to encode request")
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	return c.send(ctx, c.httpClient, method, operation, path, query, reader, contentType)
}

// doMultipart performs one multipart upload call.
func (c *Client) doMultipart(ctx context.Context, operation, path string, body io.Reader, contentType string) ([]byte, *apperrors.Error) {
	return c.send(ctx, c.uploader, http.MethodPost, operation, path, nil, body, contentType)
}

func (c *Client) send(ctx context.Context, hc *http.Client, method, operation, path string, query url.Values, body io.Reader, contentType string) ([]byte, *apperrors.Error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to build request")
	}

	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth := c.token.Authorization(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(method, operation, 0, time.Since(start))
		return nil, apperrors.Wrap(err, apperrors.ErrTransport.Code, 0, apperrors.FallbackMessage)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	c.metrics.ObserveRequest(method, operation, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrTransport.Code, 0, apperrors.FallbackMessage)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		appErr := apperrors.FromResponse(resp.StatusCode, raw)
		c.logger.Warn("backend_error",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("code", appErr.Code),
		)
		return nil, appErr
	}

	return raw, nil
}

// fetchBinary downloads a protected binary resource (farm image, document)
// and returns its bytes plus the reported content type.
func (c *Client) fetchBinary(ctx context.Context, operation, path string) ([]byte, string, *apperrors.Error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to build request")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if auth := c.token.Authorization(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(http.MethodGet, operation, 0, time.Since(start))
		return nil, "", apperrors.Wrap(err, apperrors.ErrTransport.Code, 0, apperrors.FallbackMessage)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	c.metrics.ObserveRequest(http.MethodGet, operation, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrTransport.Code, 0, apperrors.FallbackMessage)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", apperrors.FromResponse(resp.StatusCode, raw)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return raw, contentType, nil
}

func pathf(format string, args ...interface{}) string {
	escaped := make([]interface{}, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(a))
	}
	return fmt.Sprintf(format, escaped...)
}
