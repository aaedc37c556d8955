package middleware

import (
	"context"
	"net/http"
	"time"

	"mapfnet/pkg/audit"
	"mapfnet/pkg/logger"
)

// Audit writes one audit entry per request, last in the chain so it can
// observe the final status code, matching the gRPC audit interceptor's
// position in the original chain.
func Audit(serviceName string, logr audit.Logger, exclude map[string]bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exclude != nil && exclude[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := newRecorder(w)

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			builder := audit.NewEntry().
				Service(serviceName).
				Method(r.Method + " " + r.URL.Path).
				Action(methodToAction(r.URL.Path)).
				User(r.Header.Get("X-User-Id"), r.Header.Get("X-Username")).
				Client(clientIP(r), r.UserAgent()).
				RequestID(r.Header.Get("X-Request-Id")).
				Duration(duration)

			if rec.status >= 400 {
				builder.Outcome(audit.OutcomeFailure).Error(http.StatusText(rec.status), "")
			} else {
				builder.Outcome(audit.OutcomeSuccess)
			}

			entry := builder.Build()
			go func() {
				if err := logr.Log(context.Background(), entry); err != nil {
					logger.Log.Warn("failed to write audit log", "error", err)
				}
			}()
		})
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-Ip"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func methodToAction(path string) audit.Action {
	switch {
	case contains(path, "solve"):
		return audit.ActionSolve
	case contains(path, "analy"):
		return audit.ActionAnalyze
	case contains(path, "login"):
		return audit.ActionLogin
	case contains(path, "logout"):
		return audit.ActionLogout
	case contains(path, "create") || contains(path, "register"):
		return audit.ActionCreate
	case contains(path, "update") || contains(path, "refresh"):
		return audit.ActionUpdate
	case contains(path, "delete"):
		return audit.ActionDelete
	default:
		return audit.ActionRead
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
