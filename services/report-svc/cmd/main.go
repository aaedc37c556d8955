// Package main is the entry point for report-svc: it renders a solved
// MAPF instance — or its analytics, simulation, summary, comparison, or
// history data — into a downloadable report and optionally persists it.
package main

import (
	"context"
	"log"
	"time"

	"mapfnet/migrations"
	"mapfnet/pkg/config"
	"mapfnet/pkg/database"
	"mapfnet/pkg/logger"
	"mapfnet/pkg/metrics"
	"mapfnet/pkg/server"
	"mapfnet/pkg/telemetry"
	"mapfnet/services/report-svc/internal/httpapi"
	"mapfnet/services/report-svc/internal/repository"
	"mapfnet/services/report-svc/internal/service"
)

func main() {
	cfg, err := config.LoadWithServiceDefaults("report-svc", 50059)
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

	var store repository.Repository
	var db *database.PostgresDB

	if cfg.Database.Driver == "postgres" {
		db, err = database.NewPostgresDB(ctx, &cfg.Database)
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

		store = repository.NewPostgresRepository(db)
		logger.Log.Info("storage initialized", "driver", cfg.Database.Driver)

		go runCleanup(ctx, store, cfg.Report.CleanupInterval)
	} else {
		logger.Log.Warn("database not configured or driver is not 'postgres', running without persistence")
	}

	svcConfig := service.ServiceConfig{
		Version:       cfg.App.Version,
		DefaultTTL:    cfg.Report.DefaultTTL,
		SaveToStorage: store != nil && cfg.Report.SaveToStorage,
	}

	reportService := service.NewReportService(svcConfig, store)
	handler := httpapi.New(reportService)

	srv := server.New(cfg, &server.Options{Handler: handler})

	logger.Log.Info("starting report service",
		"http_port", cfg.HTTP.Port,
		"grpc_health_port", cfg.GRPC.Port,
		"environment", cfg.App.Environment,
		"version", cfg.App.Version,
		"storage_enabled", store != nil,
	)

	if err := srv.Run(); err != nil {
		logger.Fatal("server failed", "error", err)
	}
}

// runCleanup periodically purges reports past their TTL.
func runCleanup(ctx context.Context, store repository.Repository, interval time.Duration) {
	if interval == 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Log.Info("expired report cleanup worker started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("stopping cleanup worker")
			return
		case <-ticker.C:
			deleted, err := store.DeleteExpired(ctx)
			if err != nil {
				logger.Log.Error("failed to clean up expired reports", "error", err)
			} else if deleted > 0 {
				logger.Log.Info("cleaned up expired reports", "count", deleted)
			}
		}
	}
}
