// Package validationsvc exposes a constructor for external benchmarks
// that want to exercise the validation service in-process, without going
// through the HTTP transport.
package validationsvc

import "mapfnet/services/validation-svc/internal/service"

// NewBenchmarkService builds a ValidationService for benchmarks that
// want to call its methods directly.
func NewBenchmarkService() *service.ValidationService {
	return service.NewValidationService("benchmark")
}
