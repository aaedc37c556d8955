// Package middleware provides net/http middleware for the service HTTP
// servers: panic recovery, request logging, metrics, rate limiting, and
// audit logging, composed in the same order the platform used to apply as
// gRPC unary interceptors.
package middleware

import (
	"net/http"

	"mapfnet/pkg/audit"
	"mapfnet/pkg/ratelimit"
	"mapfnet/pkg/telemetry"
)

// Config controls which middleware stages are installed around a handler.
type Config struct {
	ServiceName    string
	EnableTracing  bool
	EnableAudit    bool
	RateLimiter    ratelimit.Limiter
	AuditLogger    audit.Logger
	AuditExclude   map[string]bool
	KeyExtractor   ratelimit.KeyExtractor
}

// Chain wraps h with recovery, rate limiting, tracing, metrics, logging, and
// audit middleware, applied in the same order the platform used to chain
// gRPC unary interceptors: Recovery -> RateLimit -> Tracing -> Metrics ->
// Logging -> Audit -> h.
func Chain(cfg *Config, h http.Handler) http.Handler {
	wrapped := h

	if cfg.EnableAudit && cfg.AuditLogger != nil {
		wrapped = Audit(cfg.ServiceName, cfg.AuditLogger, cfg.AuditExclude)(wrapped)
	}
	wrapped = Logging()(wrapped)
	wrapped = Metrics(cfg.ServiceName)(wrapped)
	if cfg.EnableTracing {
		wrapped = telemetry.HTTPMiddleware()(wrapped)
	}
	if cfg.RateLimiter != nil {
		wrapped = RateLimit(cfg.RateLimiter, cfg.KeyExtractor)(wrapped)
	}
	wrapped = Recovery()(wrapped)

	return wrapped
}

// responseRecorder captures the status code written by the handler so that
// outer middleware can observe it after ServeHTTP returns.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func newRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, status: http.StatusOK}
}
