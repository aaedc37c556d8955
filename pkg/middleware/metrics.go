package middleware

import (
	"net/http"
	"time"

	"mapfnet/pkg/metrics"
)

// Metrics records request counts, durations, and in-flight gauges for every
// request that passes through the wrapped handler.
func Metrics(_ string) func(http.Handler) http.Handler {
	m := metrics.Get()
	tracker := metrics.NewRequestTracker(m.HTTPRequestsInFlight)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracker.Start(r.URL.Path)
			defer tracker.End(r.URL.Path)

			start := time.Now()
			rec := newRecorder(w)

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			m.RecordHTTPRequest(r.URL.Path, http.StatusText(rec.status), duration)
		})
	}
}
