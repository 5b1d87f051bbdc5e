package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, branchsalary.ErrRunInProgress):
		Conflict(w, "A pipeline run is already in progress")
	case errors.Is(err, branchsalary.ErrNoRunYet):
		NotFound(w, "No pipeline run has completed yet")
	case errors.Is(err, branchsalary.ErrRatesUnavailable):
		NotImplemented(w, "The configured destination cannot be queried")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
