package middleware

import (
	"net/http"
	"strconv"
	"time"

	"mapfnet/pkg/logger"
	"mapfnet/pkg/ratelimit"
)

// RateLimit rejects requests past the configured rate with 429, mirroring
// the gRPC rate-limit interceptor the platform applied right after recovery
// (ahead of the CPU-expensive MAPF solve handlers).
func RateLimit(limiter ratelimit.Limiter, keyExtractor ratelimit.KeyExtractor) func(http.Handler) http.Handler {
	if keyExtractor == nil {
		keyExtractor = ratelimit.DefaultKeyExtractor
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			meta := map[string]string{
				"x-forwarded-for": r.Header.Get("X-Forwarded-For"),
				"x-user-id":       r.Header.Get("X-User-Id"),
			}
			key := keyExtractor(r.Context(), r.URL.Path, meta)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Log.Warn("rate limit check failed", "error", err, "key", key)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				info, infoErr := limiter.GetInfo(r.Context(), key)
				resetAt := time.Now().Add(time.Minute)
				limit := 0
				if infoErr == nil {
					resetAt = info.ResetAt
					limit = info.Limit
				}

				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", resetAt.Format(time.RFC3339))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
