// Package main is the entry point for audit-svc: it persists one audit
// row per solve request/response and answers log, resource-history,
// user-activity, and aggregate-statistics queries over it.
package main

import (
	"context"
	"log"

	"mapfnet/migrations"
	"mapfnet/pkg/config"
	"mapfnet/pkg/database"
	"mapfnet/pkg/logger"
	"mapfnet/pkg/metrics"
	"mapfnet/pkg/server"
	"mapfnet/pkg/telemetry"
	"mapfnet/services/audit-svc/internal/httpapi"
	"mapfnet/services/audit-svc/internal/repository"
	"mapfnet/services/audit-svc/internal/service"
)

func main() {
	cfg, err := config.LoadWithServiceDefaults("audit-svc", 50057)
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

	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(
			ctx,
			db.Pool(),
			&cfg.Database,
			migrations.PostgresMigrations,
			"postgres",
		); err != nil {
			logger.Fatal("failed to run migrations", "error", err)
		}
	}

	repo := repository.NewPostgresAuditRepository(db)
	auditService := service.NewAuditService(repo, cfg.App.Version)
	handler := httpapi.New(auditService)

	// Excludes audit-svc's own write routes from the audit middleware to
	// avoid logging an audit call about itself.
	srv := server.New(cfg, &server.Options{
		Handler: handler,
		AuditExcludePaths: []string{
			"/v1/events",
			"/v1/events/batch",
		},
	})

	logger.Log.Info("starting audit service",
		"http_port", cfg.HTTP.Port,
		"grpc_health_port", cfg.GRPC.Port,
		"environment", cfg.App.Environment,
		"version", cfg.App.Version,
	)

	if err := srv.Run(); err != nil {
		logger.Fatal("server failed", "error", err)
	}
}
