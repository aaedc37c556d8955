// services/analytics-svc/factory.go
package analyticssvc

import (
	"mapfnet/services/analytics-svc/internal/service"
)

// NewBenchmarkServer builds an AnalyticsService for benchmarks that only
// exercise congestion analysis, with no transport wrapped around it.
func NewBenchmarkServer() *service.AnalyticsService {
	return service.NewAnalyticsService()
}
