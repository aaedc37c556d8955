package validators

import (
	"fmt"

	pkgerrors "mapfnet/pkg/apperror"
)

// ValidateRequest checks the request envelope itself, ahead of any
// field-level check.
func ValidateRequest(req *ConfigRequest) []*ValidationError {
	if req == nil {
		return []*ValidationError{{
			Field:   "request",
			Code:    string(pkgerrors.CodeNilInput),
			Message: "request body is required",
		}}
	}
	return nil
}

// ValidateThreshold checks that value falls within [min, max] — used by
// callers validating a solver option such as epsilon or a timeout.
func ValidateThreshold(value float64, fieldName string, min, max float64) []*ValidationError {
	if value < min || value > max {
		return []*ValidationError{{
			Field:   fieldName,
			Code:    string(pkgerrors.CodeInvalidThreshold),
			Message: fmt.Sprintf("%s must be in [%.2f, %.2f], got %.2f", fieldName, min, max, value),
		}}
	}
	return nil
}

// ValidatePagination checks page/pageSize parameters shared by
// history-svc and analytics-svc's list endpoints.
func ValidatePagination(page, pageSize int) []*ValidationError {
	var errs []*ValidationError

	if page < 0 {
		errs = append(errs, &ValidationError{
			Field:   "page",
			Code:    string(pkgerrors.CodeInvalidPagination),
			Message: fmt.Sprintf("page must not be negative, got %d", page),
		})
	}
	if pageSize < 0 {
		errs = append(errs, &ValidationError{
			Field:   "page_size",
			Code:    string(pkgerrors.CodeInvalidPagination),
			Message: fmt.Sprintf("page_size must not be negative, got %d", pageSize),
		})
	}
	if pageSize > 1000 {
		errs = append(errs, &ValidationError{
			Field:   "page_size",
			Code:    string(pkgerrors.CodeInvalidPagination),
			Message: fmt.Sprintf("page_size %d exceeds the maximum of 1000", pageSize),
		})
	}

	return errs
}
