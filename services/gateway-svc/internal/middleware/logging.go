package middleware

import (
	"net/http"
	"time"

	"mapfnet/pkg/logger"
)

type statusCapture struct {
	http.ResponseWriter
	status int
}

func (s *statusCapture) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging records one log line per request, carrying user_id when the
// request has already passed through Auth.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sc := &statusCapture{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sc, r)

		duration := time.Since(start)
		userID := GetUserID(r.Context())

		logFields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", sc.status,
			"duration_ms", duration.Milliseconds(),
		}
		if userID != "" {
			logFields = append(logFields, "user_id", userID)
		}

		if sc.status >= 500 {
			logger.Log.Error("Gateway request failed", logFields...)
		} else {
			logger.Log.Info("Gateway request completed", logFields...)
		}
	})
}
