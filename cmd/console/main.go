package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/agrisure-console/internal/api"
	"github.com/noah-isme/agrisure-console/internal/lookup"
	"github.com/noah-isme/agrisure-console/internal/session"
	"github.com/noah-isme/agrisure-console/pkg/config"
	"github.com/noah-isme/agrisure-console/pkg/logger"
	"github.com/noah-isme/agrisure-console/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	rec := metrics.NewRecorder()
	sessions := session.NewManager()
	backend := api.New(cfg.API, sessions, logr, rec)
	geo := lookup.New(cfg.Lookup, logr, rec)

	// Warm the geo caches and probe the backend once so a misconfigured
	// base URL shows up in the logs at startup instead of on first use.
	probeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	states, _ := geo.Prefetch(probeCtx, "")
	if _, appErr := backend.ListApprovedInsurers(probeCtx); appErr != nil {
		logr.Sugar().Warnw("backend probe failed", "base_url", cfg.API.BaseURL, "error", appErr.Message)
	}
	cancel()
	logr.Sugar().Infow("startup probe complete", "states_cached", len(states))

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": cfg.API.BaseURL})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(rec.Registry(), promhttp.HandlerOpts{})))

	logr.Sugar().Infow("console ops endpoint starting", "addr", cfg.MetricsAddr, "env", cfg.Env)
	if err := r.Run(cfg.MetricsAddr); err != nil {
		logr.Sugar().Fatalw("ops endpoint failed", "error", err)
	}
}
