package branchsalary

import (
	"time"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RatePrecision is the number of decimal places kept on hours and rates.
const RatePrecision = 6

var secondsPerHour = decimal.NewFromInt(3600)

// HoursFromSeconds converts an exact second count to hours.
func HoursFromSeconds(seconds int64) decimal.Decimal {
	return decimal.NewFromInt(seconds).DivRound(secondsPerHour, RatePrecision)
}

// EnrichedInterval is a cleaned interval with the employee's roster entry
// attached. BranchID and Salary are nil when the employee is not on the roster.
type EnrichedInterval struct {
	attendance.CleanedInterval
	BranchID *string
	Salary   *decimal.Decimal
}

// Matched reports whether the roster lookup found the employee.
func (e EnrichedInterval) Matched() bool {
	return e.BranchID != nil && e.Salary != nil
}

// MonthlyEmployeeHours is the worked time for one (year, month, branch, salary) bucket.
type MonthlyEmployeeHours struct {
	Year         int
	Month        int
	BranchID     string
	Salary       decimal.Decimal
	TotalSeconds int64
	Intervals    int
}

func (m MonthlyEmployeeHours) TotalHours() decimal.Decimal {
	return HoursFromSeconds(m.TotalSeconds)
}

// BranchMonthRate is the terminal salary-per-hour figure of a branch-month.
// SalaryPerHour is nil when the branch-month has no worked hours.
type BranchMonthRate struct {
	Year          int
	Month         int
	BranchID      string
	TotalHours    decimal.Decimal
	TotalSalary   decimal.Decimal
	SalaryPerHour *decimal.Decimal
}

func (r BranchMonthRate) Undefined() bool {
	return r.SalaryPerHour == nil
}

// Counts tracks what happened to rows at each stage of a run.
type Counts struct {
	TimesheetRows       int `json:"timesheet_rows"`
	RosterRows          int `json:"roster_rows"`
	MalformedTimesheets int `json:"malformed_timesheets"`
	MalformedEmployees  int `json:"malformed_employees"`
	DuplicateRecords    int `json:"duplicate_records"`
	DuplicateEmployees  int `json:"duplicate_employees"`
	Unprocessable       int `json:"unprocessable_records"`
	EmptyIntervals      int `json:"empty_intervals"`
	ImputedCheckIns     int `json:"imputed_checkins"`
	ImputedCheckOuts    int `json:"imputed_checkouts"`
	OvernightAdjusted   int `json:"overnight_adjusted"`
	Intervals           int `json:"intervals"`
	UnmatchedIntervals  int `json:"unmatched_intervals"`
	MonthlyGroups       int `json:"monthly_groups"`
	Rates               int `json:"rates"`
	UndefinedRates      int `json:"undefined_rates"`
}

// Rejected is the number of rows dropped as data-quality failures.
func (c Counts) Rejected() int {
	return c.MalformedTimesheets + c.MalformedEmployees + c.Unprocessable + c.EmptyIntervals
}

// Report describes one completed pipeline run.
type Report struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Counts     Counts
	Rates      []BranchMonthRate
}
