package middleware

import (
	"net/http"
	"strconv"
	"time"

	gwmetrics "mapfnet/services/gateway-svc/internal/metrics"
)

// Metrics records per-route latency and status for every proxied request.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sc := &statusCapture{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sc, r)

		duration := time.Since(start)
		gwmetrics.Get().RecordBackendRequest("gateway", r.URL.Path, strconv.Itoa(sc.status), duration)
	})
}
