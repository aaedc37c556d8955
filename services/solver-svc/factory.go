// Package solversvc exposes a constructor for external benchmarks that
// want to exercise the solver service in-process, without going through
// the HTTP transport.
package solversvc

import "mapfnet/services/solver-svc/internal/service"

// NewBenchmarkService builds a SolverService with no cache backing, for
// benchmarks that want to call Solve directly.
func NewBenchmarkService() *service.SolverService {
	return service.NewSolverService("benchmark", nil)
}
