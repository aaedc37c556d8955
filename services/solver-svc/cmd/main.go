// Package main is the entry point for the solver-svc microservice.
//
// solver-svc exposes the MAPF-MILP constraint-generation engine
// (internal/mapf, internal/mapf/api) as a JSON-over-HTTP service: one
// route accepts a graph, an agent set and its cost/timing tensors, picks
// one of the three solve flavors (continuous, continuous with the
// dynamic-conflict loop, discrete-time), and returns the per-agent paths.
package main

import (
	"context"
	"log"
	"time"

	"mapfnet/pkg/cache"
	"mapfnet/pkg/config"
	"mapfnet/pkg/logger"
	"mapfnet/pkg/metrics"
	"mapfnet/pkg/server"
	"mapfnet/pkg/telemetry"
	"mapfnet/services/solver-svc/internal/httpapi"
	"mapfnet/services/solver-svc/internal/service"
)

func main() {
	cfg, err := config.LoadWithServiceDefaults("solver-svc", 50052)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		tp, err := telemetry.Init(ctx, telemetry.Config{
			Enabled:     cfg.Tracing.Enabled,
			Endpoint:    cfg.Tracing.Endpoint,
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Environment: cfg.App.Environment,
			SampleRate:  cfg.Tracing.SampleRate,
		})
		if err != nil {
			logger.Log.Warn("failed to init telemetry", "error", err)
		} else {
			defer func() {
				if err := tp.Shutdown(context.Background()); err != nil {
					logger.Log.Warn("failed to shutdown telemetry", "error", err)
				}
			}()
			logger.Log.Info("telemetry initialized", "endpoint", cfg.Tracing.Endpoint)
		}
	}

	metrics.InitMetrics(cfg.Metrics.Namespace, cfg.App.Name)

	var solverCache *cache.SolverCache
	if cfg.Cache.Enabled {
		c, err := cache.New(cache.FromConfig(&cfg.Cache))
		if err != nil {
			logger.Log.Warn("failed to init solve cache, continuing without it", "error", err)
		} else {
			solverCache = cache.NewSolverCache(c, 10*time.Minute)
		}
	}

	svc := service.NewSolverService(cfg.App.Version, solverCache)
	handler := httpapi.New(svc)

	srv := server.New(cfg, &server.Options{Handler: handler})

	logger.Log.Info("starting solver service",
		"http_port", cfg.HTTP.Port,
		"grpc_health_port", cfg.GRPC.Port,
		"environment", cfg.App.Environment,
		"version", cfg.App.Version,
	)

	if err := srv.Run(); err != nil {
		logger.Log.Error("server failed", "error", err)
		if shutdownErr := svc.Shutdown(context.Background()); shutdownErr != nil {
			logger.Log.Warn("solver service shutdown wait failed", "error", shutdownErr)
		}
		log.Fatalf("server failed: %v", err)
	}
}
