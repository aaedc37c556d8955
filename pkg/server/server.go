// Package server provides the HTTP server wrapper every service binary uses
// to expose its JSON API, plus a minimal gRPC server kept alive solely for
// the platform's standard gRPC health-check protocol.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"mapfnet/pkg/audit"
	"mapfnet/pkg/config"
	"mapfnet/pkg/logger"
	"mapfnet/pkg/metrics"
	"mapfnet/pkg/middleware"
	"mapfnet/pkg/ratelimit"
	"mapfnet/pkg/telemetry"
)

// Server wraps the service's HTTP API (the JSON/MAPF RPC surface) alongside
// a tiny gRPC server whose only job is to answer grpc.health.v1.Health
// checks — orchestrators that already speak gRPC health checking for the
// rest of the platform's services can keep doing so for this one too.
type Server struct {
	httpServer  *http.Server
	grpcHealth  *grpc.Server
	health      *health.Server
	serviceName string
	config      *config.Config
	telemetry   *telemetry.Provider
	rateLimiter ratelimit.Limiter
	auditLogger audit.Logger
}

// Options carries the pieces a service main() supplies beyond config:
// its route handler, and optional rate-limiter/audit-logger overrides.
type Options struct {
	Handler             http.Handler
	RateLimiter         ratelimit.Limiter
	AuditLogger         audit.Logger
	AuditExcludePaths   []string
	KeyExtractor        ratelimit.KeyExtractor
}

// New builds a Server from cfg and opts, wiring the same middleware chain
// (recovery -> rate-limit -> metrics -> logging -> audit) in front of
// opts.Handler, and a grpc.health.v1 server on cfg.GRPC.Port.
func New(cfg *config.Config, opts *Options) *Server {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Handler == nil {
		opts.Handler = http.NewServeMux()
	}

	rateLimiter := opts.RateLimiter
	if rateLimiter == nil && cfg.RateLimit.Enabled {
		var err error
		rateLimiter, err = ratelimit.New(&ratelimit.Config{
			Requests:        cfg.RateLimit.Requests,
			Window:          cfg.RateLimit.Window,
			Strategy:        cfg.RateLimit.Strategy,
			Backend:         cfg.RateLimit.Backend,
			BurstSize:       cfg.RateLimit.BurstSize,
			CleanupInterval: cfg.RateLimit.CleanupInterval,
			RedisAddr:       cfg.RateLimit.RedisAddr,
		})
		if err != nil {
			logger.Log.Warn("failed to create rate limiter, continuing without it", "error", err)
			rateLimiter = nil
		} else {
			logger.Log.Info("rate limiter initialized",
				"requests", cfg.RateLimit.Requests,
				"window", cfg.RateLimit.Window,
				"strategy", cfg.RateLimit.Strategy,
			)
		}
	}

	auditLogger := opts.AuditLogger
	if auditLogger == nil && cfg.Audit.Enabled {
		var err error
		auditLogger, err = audit.New(&audit.Config{
			Enabled:         cfg.Audit.Enabled,
			Backend:         cfg.Audit.Backend,
			FilePath:        cfg.Audit.FilePath,
			BufferSize:      cfg.Audit.BufferSize,
			FlushPeriod:     cfg.Audit.FlushPeriod,
			ExcludeMethods:  cfg.Audit.ExcludeMethods,
			IncludeRequest:  cfg.Audit.IncludeRequest,
			IncludeResponse: cfg.Audit.IncludeResponse,
		})
		if err != nil {
			logger.Log.Warn("failed to create audit logger, continuing without it", "error", err)
			auditLogger = nil
		} else {
			audit.SetGlobal(auditLogger)
			logger.Log.Info("audit logger initialized", "backend", cfg.Audit.Backend)
		}
	}

	auditExclude := make(map[string]bool)
	for _, path := range opts.AuditExcludePaths {
		auditExclude[path] = true
	}
	for _, path := range cfg.Audit.ExcludeMethods {
		auditExclude[path] = true
	}
	auditExclude["/healthz"] = true

	handler := middleware.Chain(&middleware.Config{
		ServiceName:   cfg.App.Name,
		EnableTracing: cfg.Tracing.Enabled,
		EnableAudit:   cfg.Audit.Enabled && auditLogger != nil,
		RateLimiter:   rateLimiter,
		AuditLogger:   auditLogger,
		AuditExclude:  auditExclude,
		KeyExtractor:  opts.KeyExtractor,
	}, opts.Handler)

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	grpcSrv := grpc.NewServer()
	h := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcSrv, h)
	if cfg.IsDevelopment() {
		reflection.Register(grpcSrv)
	}

	return &Server{
		httpServer:  httpSrv,
		grpcHealth:  grpcSrv,
		health:      h,
		serviceName: cfg.App.Name,
		config:      cfg,
		rateLimiter: rateLimiter,
		auditLogger: auditLogger,
	}
}

// GetAuditLogger returns the server's audit logger, if any.
func (s *Server) GetAuditLogger() audit.Logger {
	return s.auditLogger
}

// Run starts telemetry, the metrics server, the gRPC health server, and the
// HTTP API server, then blocks until shutdown.
func (s *Server) Run() error {
	ctx := context.Background()

	if s.config.Tracing.Enabled {
		tp, err := telemetry.Init(ctx, telemetry.Config{
			Enabled:     s.config.Tracing.Enabled,
			Endpoint:    s.config.Tracing.Endpoint,
			ServiceName: s.config.Tracing.ServiceName,
			Version:     s.config.App.Version,
			Environment: s.config.App.Environment,
			SampleRate:  s.config.Tracing.SampleRate,
		})
		if err != nil {
			logger.Log.Warn("failed to init telemetry", "error", err)
		} else {
			s.telemetry = tp
			logger.Log.Info("telemetry initialized", "endpoint", s.config.Tracing.Endpoint)
		}
	}

	if s.config.Metrics.Enabled {
		go func() {
			logger.Log.Info("starting metrics server", "port", s.config.Metrics.Port)
			if err := metrics.StartMetricsServer(s.config.Metrics.Port); err != nil {
				logger.Log.Error("metrics server failed", "error", err)
			}
		}()
	}

	errCh := make(chan error, 2)

	go func() {
		lc := net.ListenConfig{}
		lis, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", s.config.GRPC.Port))
		if err != nil {
			errCh <- fmt.Errorf("health listener: %w", err)
			return
		}
		s.health.SetServingStatus(s.serviceName, grpc_health_v1.HealthCheckResponse_SERVING)
		logger.Log.Info("starting gRPC health server", "port", s.config.GRPC.Port)
		if err := s.grpcHealth.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	go func() {
		logger.Log.Info("starting HTTP server",
			"service", s.serviceName,
			"port", s.config.HTTP.Port,
			"environment", s.config.App.Environment,
			"version", s.config.App.Version,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	if m := metrics.Get(); m != nil {
		m.SetServiceInfo(s.config.App.Version, s.config.App.Environment)
	}

	if s.auditLogger != nil {
		entry := audit.NewEntry().
			Service(s.serviceName).
			Method("server.Start").
			Action(audit.ActionCreate).
			Outcome(audit.OutcomeSuccess).
			Meta("port", s.config.HTTP.Port).
			Meta("version", s.config.App.Version).
			Build()
		if err := s.auditLogger.Log(ctx, entry); err != nil {
			logger.Log.Warn("failed to log audit entry", "error", err)
		}
	}

	return s.waitForShutdown(errCh)
}

func (s *Server) waitForShutdown(errCh chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Log.Info("received shutdown signal", "signal", sig)
	}

	if s.auditLogger != nil {
		entry := audit.NewEntry().
			Service(s.serviceName).
			Method("server.Shutdown").
			Action(audit.ActionUpdate).
			Outcome(audit.OutcomeSuccess).
			Meta("reason", "signal").
			Build()
		if err := s.auditLogger.Log(context.Background(), entry); err != nil {
			logger.Log.Warn("failed to log audit entry", "error", err)
		}
	}

	shutdownTimeout := s.config.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.health.SetServingStatus(s.serviceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	if s.telemetry != nil {
		if err := s.telemetry.Shutdown(ctx); err != nil {
			logger.Log.Warn("failed to shutdown telemetry", "error", err)
		}
	}
	if s.rateLimiter != nil {
		if err := s.rateLimiter.Close(); err != nil {
			logger.Log.Warn("failed to close rate limiter", "error", err)
		}
	}
	if s.auditLogger != nil {
		if err := s.auditLogger.Close(); err != nil {
			logger.Log.Warn("failed to close audit logger", "error", err)
		}
	}

	done := make(chan struct{})
	go func() {
		_ = s.httpServer.Shutdown(ctx)
		s.grpcHealth.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		logger.Log.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Log.Warn("forcing server stop")
		s.grpcHealth.Stop()
	}

	return nil
}

// Stop forces an immediate shutdown.
func (s *Server) Stop() {
	s.grpcHealth.Stop()
	_ = s.httpServer.Close()
}
