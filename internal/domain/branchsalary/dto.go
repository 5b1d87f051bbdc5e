package branchsalary

import (
	"time"

	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// RateFilter narrows a rate query. Zero values match everything.
type RateFilter struct {
	Year     int
	Month    int
	BranchID string
}

func (f *RateFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != 0 && (f.Month < 1 || f.Month > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Month != 0 && f.Year == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required when month is set",
		})
	}
	if f.Year != 0 && (f.Year < 1900 || f.Year > 9999) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1900 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RateResponse struct {
	Year          int              `json:"year"`
	Month         int              `json:"month"`
	BranchID      string           `json:"branch_id"`
	TotalHours    decimal.Decimal  `json:"hours_diff"`
	TotalSalary   decimal.Decimal  `json:"salary"`
	SalaryPerHour *decimal.Decimal `json:"salary_per_hour"`
}

func NewRateResponse(r BranchMonthRate) RateResponse {
	return RateResponse{
		Year:          r.Year,
		Month:         r.Month,
		BranchID:      r.BranchID,
		TotalHours:    r.TotalHours,
		TotalSalary:   r.TotalSalary,
		SalaryPerHour: r.SalaryPerHour,
	}
}

type ReportResponse struct {
	RunID      string `json:"run_id"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	DurationMs int64  `json:"duration_ms"`
	Rejected   int    `json:"rejected_rows"`
	Counts     Counts `json:"counts"`
}

func NewReportResponse(r Report) ReportResponse {
	return ReportResponse{
		RunID:      r.RunID.String(),
		StartedAt:  r.StartedAt.Format(time.RFC3339),
		FinishedAt: r.FinishedAt.Format(time.RFC3339),
		DurationMs: r.FinishedAt.Sub(r.StartedAt).Milliseconds(),
		Rejected:   r.Counts.Rejected(),
		Counts:     r.Counts,
	}
}
