// Package main is the entry point for the validation-svc microservice.
//
// validation-svc exposes MAPF configuration checks (structural,
// connectivity, business-rule, topology, solution-conflict, solve-mode
// fit) over JSON-over-HTTP, as a reusable pre-flight gate independent of
// solver-svc's own inline mapf.Config.Validate.
package main

import (
	"context"
	"log"
	"time"

	"mapfnet/pkg/config"
	"mapfnet/pkg/logger"
	"mapfnet/pkg/metrics"
	"mapfnet/pkg/server"
	"mapfnet/pkg/telemetry"
	"mapfnet/services/validation-svc/internal/httpapi"
	"mapfnet/services/validation-svc/internal/service"
)

func main() {
	cfg, err := config.LoadWithServiceDefaults("validation-svc", 50054)
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

	if cfg.Tracing.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

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

	svc := service.NewValidationService(cfg.App.Version)
	handler := httpapi.New(svc)

	srv := server.New(cfg, &server.Options{Handler: handler})

	logger.Log.Info("starting validation service",
		"http_port", cfg.HTTP.Port,
		"grpc_health_port", cfg.GRPC.Port,
		"environment", cfg.App.Environment,
		"version", cfg.App.Version,
		"tracing_enabled", cfg.Tracing.Enabled,
	)

	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
