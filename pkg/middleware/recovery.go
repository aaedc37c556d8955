package middleware

import (
	"net/http"

	"mapfnet/pkg/logger"
)

// Recovery converts a panic inside the wrapped handler into a 500 response
// instead of crashing the process, mirroring the gRPC recovery interceptor
// the platform used to install first in its interceptor chain.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Log.Error("panic recovered in handler",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
					)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
