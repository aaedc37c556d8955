package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"mapfnet/pkg/config"
	"mapfnet/pkg/logger"
	"mapfnet/pkg/metrics"
	"mapfnet/pkg/ratelimit"
	"mapfnet/services/gateway-svc/internal/clients"
	"mapfnet/services/gateway-svc/internal/handlers"
	"mapfnet/services/gateway-svc/internal/middleware"
)

const statusHealthy = "HEALTHY"

func main() {
	cfg, err := config.LoadWithServiceDefaults("gateway-svc", 8080)
	if err != nil {
		logger.Init("error")
		logger.Fatal("Failed to load config", "error", err)
	}

	logger.InitWithConfig(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})

	logger.Log.Info("Starting gateway-svc",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clientManager, err := clients.NewManager(ctx, &clients.Config{
		Solver:     cfg.Services.Solver,
		Analytics:  cfg.Services.Analytics,
		Validation: cfg.Services.Validation,
		History:    cfg.Services.History,
		Auth:       cfg.Services.Auth,
		Simulation: cfg.Services.Simulation,
		Report:     cfg.Services.Report,
		Audit:      cfg.Services.Audit,
	})
	if err != nil {
		logger.Fatal("Failed to initialize clients", "error", err)
	}
	defer clientManager.Close()

	gatewayHandler := handlers.New(clientManager, cfg)

	mux := http.NewServeMux()
	mux.Handle("/", gatewayHandler)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/ready", handleReady(clientManager))
	if cfg.Metrics.Enabled {
		mux.Handle("/metrics", metrics.Handler())
	}

	var httpHandler http.Handler = mux

	// Middleware wraps innermost-first, so the request actually flows
	// CORS -> Logging -> Metrics -> Tracing -> Auth -> RateLimit -> mux:
	// Auth must run before RateLimit since DefaultKeyExtractor keys on
	// the authenticated user ID Auth places in context.
	publicPaths := middleware.PublicPaths()

	if cfg.RateLimit.Enabled {
		limiter, err := ratelimit.New(&ratelimit.Config{
			Requests:        cfg.RateLimit.Requests,
			Window:          cfg.RateLimit.Window,
			Strategy:        cfg.RateLimit.Strategy,
			Backend:         cfg.RateLimit.Backend,
			BurstSize:       cfg.RateLimit.BurstSize,
			CleanupInterval: cfg.RateLimit.CleanupInterval,
			RedisAddr:       cfg.RateLimit.RedisAddr,
		})
		if err != nil {
			logger.Fatal("Failed to initialize rate limiter", "error", err)
		}
		defer limiter.Close()

		httpHandler = middleware.RateLimit(&middleware.RateLimitConfig{
			Limiter:      limiter,
			KeyExtractor: middleware.DefaultKeyExtractor,
			ExcludePaths: publicPaths,
		})(httpHandler)
	}

	httpHandler = middleware.Auth(&middleware.AuthConfig{
		Client:      clientManager.Auth(),
		PublicPaths: publicPaths,
	})(httpHandler)

	httpHandler = middleware.Tracing(httpHandler)
	httpHandler = middleware.Metrics(httpHandler)
	httpHandler = middleware.Logging(httpHandler)

	if cfg.HTTP.CORS.Enabled {
		httpHandler = middleware.CORS(cfg.HTTP.CORS)(httpHandler)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      h2c.NewHandler(httpHandler, &http2.Server{}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Log.Info("Gateway listening", "port", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server shutdown error", "error", err)
	}

	logger.Log.Info("Server stopped")
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		// Логировать не можем - response уже начат отправляться
		return
	}
}

func handleReady(clientManager *clients.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := clientManager.CheckHealth(r.Context())
		allHealthy := true
		for _, h := range health {
			if h.Status != statusHealthy {
				allHealthy = false
				break
			}
		}
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte(`{"ready":true}`)); err != nil {
				return
			}
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, err := w.Write([]byte(`{"ready":false}`)); err != nil {
				return
			}
		}
	}
}
