package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/noah-isme/agrisure-console/pkg/config"
)

func New(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Env == config.EnvProduction {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Log.Format {
	case "console":
		zapCfg.Encoding = "console"
	default:
		zapCfg.Encoding = "json"
	}

	if cfg.Log.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build()
}

// RoundTripper logs every outbound backend call with its latency and status.
type RoundTripper struct {
	next   http.RoundTripper
	logger *zap.Logger
}

// NewRoundTripper wraps next with request logging. A nil next falls back to
// http.DefaultTransport.
func NewRoundTripper(next http.RoundTripper, l *zap.Logger) *RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &RoundTripper{next: next, logger: l}
}

// RoundTrip implements http.RoundTripper.
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	latency := time.Since(start)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Duration("latency", latency),
	}
	if reqID := req.Header.Get("X-Request-ID"); reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}

	if err != nil {
		rt.logger.Warn("http_request_failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	rt.logger.Info("http_request", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}
