package middleware

import (
	"net/http"
	"time"

	"mapfnet/pkg/logger"
)

// Logging records method, path, status, and duration for every request.
func Logging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newRecorder(w)

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", duration.Milliseconds(),
			}
			if rec.status >= 500 {
				logger.Log.Error("request failed", fields...)
			} else {
				logger.Log.Info("request completed", fields...)
			}
		})
	}
}
