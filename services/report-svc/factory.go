// services/report-svc/factory.go
package reportsvc

import (
	"time"

	"mapfnet/services/report-svc/internal/repository"
	"mapfnet/services/report-svc/internal/service"
)

// NewBenchmarkServer builds a ReportService with no backing storage, for
// benchmarks that only exercise report rendering.
func NewBenchmarkServer() *service.ReportService {
	cfg := service.ServiceConfig{
		Version:       "benchmark",
		DefaultTTL:    24 * time.Hour,
		SaveToStorage: false,
	}
	return service.NewReportService(cfg, nil)
}

// NewBenchmarkServerWithRepo builds a ReportService backed by repo, for
// benchmarks that also exercise persistence.
func NewBenchmarkServerWithRepo(repo repository.Repository) *service.ReportService {
	cfg := service.ServiceConfig{
		Version:       "benchmark",
		DefaultTTL:    24 * time.Hour,
		SaveToStorage: true,
	}
	return service.NewReportService(cfg, repo)
}
