package middleware

import (
	"net/http"
	"strconv"
	"time"

	"mapfnet/pkg/logger"
	"mapfnet/pkg/ratelimit"
	gatewaymetrics "mapfnet/services/gateway-svc/internal/metrics"
)

// RateLimitConfig configures the rate-limit middleware.
type RateLimitConfig struct {
	Limiter       ratelimit.Limiter
	KeyExtractor  KeyExtractor
	ExcludePaths  map[string]bool
}

// KeyExtractor derives the rate-limit bucket key for a request.
type KeyExtractor func(r *http.Request) string

// DefaultKeyExtractor buckets by authenticated user, falling back to the
// caller's address.
func DefaultKeyExtractor(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != "" {
		return "user:" + userID
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return "ip:" + xff
	}
	if xri := r.Header.Get("X-Real-Ip"); xri != "" {
		return "ip:" + xri
	}
	return "ip:" + r.RemoteAddr
}

// MethodCategoryExtractor classifies a route path into the backend
// category it targets, for per-category rate limiting and metrics.
func MethodCategoryExtractor(path string) string {
	categories := []struct {
		keyword  string
		category string
	}{
		{"monte-carlo", "simulation"},
		{"what-if", "simulation"},
		{"resilience", "simulation"},
		{"failure", "simulation"},
		{"critical", "simulation"},
		{"sensitivity", "simulation"},
		{"simulation", "simulation"},

		{"cost", "analytics"},
		{"bottleneck", "analytics"},
		{"compare", "analytics"},
		{"analy", "analytics"},

		{"solve", "optimization"},
		{"calculate", "optimization"},
		{"batch", "optimization"},

		{"validat", "validation"},

		{"calculation", "history"},
		{"history", "history"},
		{"statistics", "history"},

		{"report", "report"},
		{"download", "report"},

		{"audit", "audit"},

		{"login", "auth"},
		{"register", "auth"},
		{"token", "auth"},
		{"profile", "auth"},
		{"auth", "auth"},
	}

	for _, c := range categories {
		if containsSubstring(path, c.keyword) {
			return c.category
		}
	}
	return "general"
}

func containsSubstring(s, substr string) bool {
	return len(s) >= len(substr) && findSubstring(s, substr) >= 0
}

func findSubstring(s, substr string) int {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

// RateLimit enforces per-category, per-key request limits, failing open
// when the limiter backend errors.
func RateLimit(cfg *RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = DefaultKeyExtractor
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.ExcludePaths != nil && cfg.ExcludePaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			key := cfg.KeyExtractor(r)
			category := MethodCategoryExtractor(r.URL.Path)
			fullKey := category + ":" + key

			allowed, err := cfg.Limiter.Allow(r.Context(), fullKey)
			if err != nil {
				logger.Log.Warn("Rate limit check failed", "error", err, "key", fullKey)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				gatewaymetrics.Get().RateLimitHits.Inc()

				limitInfo, infoErr := cfg.Limiter.GetInfo(r.Context(), fullKey)
				if infoErr != nil {
					logger.Log.Warn("Failed to get rate limit info", "error", infoErr, "key", fullKey)
					limitInfo = &ratelimit.LimitInfo{Limit: 0, ResetAt: time.Now().Add(time.Minute)}
				}

				logger.Log.Warn("Rate limit exceeded", "key", fullKey, "category", category, "limit", limitInfo.Limit)

				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limitInfo.Limit))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", limitInfo.ResetAt.Format(time.RFC3339))
				w.Header().Set("X-RateLimit-Category", category)
				http.Error(w, "rate limit exceeded for category "+category, http.StatusTooManyRequests)
				return
			}

			gatewaymetrics.Get().RateLimitPassed.Inc()
			next.ServeHTTP(w, r)
		})
	}
}
