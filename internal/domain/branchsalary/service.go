package branchsalary

import (
	"context"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
)

// BranchSalaryService runs the salary-per-hour pipeline and serves its results.
type BranchSalaryService interface {
	// Run recomputes every branch-month from the sources and replaces the destination
	Run(ctx context.Context) (Report, error)

	// LatestReport returns the report of the last successful run
	LatestReport() (Report, error)

	// ListRates reads persisted rates from the destination
	ListRates(ctx context.Context, filter RateFilter) ([]RateResponse, error)

	// SetShiftRules swaps the imputation thresholds used by later runs
	SetShiftRules(rules attendance.ShiftRules) error
}
