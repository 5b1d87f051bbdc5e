package branchsalary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/employee"
)

// Result is everything a single computation produced.
type Result struct {
	Intervals []branchsalary.EnrichedInterval
	Monthly   []branchsalary.MonthlyEmployeeHours
	Rates     []branchsalary.BranchMonthRate
	Counts    branchsalary.Counts
	Rejects   []error
}

// Pipeline chains the cleaning and aggregation stages. It holds no state
// between calls, so Compute is a pure function of its inputs.
type Pipeline struct {
	imputer    *TimeImputer
	aggregator *IntervalAggregator
}

func NewPipeline(rules attendance.ShiftRules, workers int) (*Pipeline, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		imputer:    NewTimeImputer(rules),
		aggregator: NewIntervalAggregator(workers),
	}, nil
}

func (p *Pipeline) Compute(ctx context.Context, timesheets []attendance.TimesheetRow, roster []employee.RosterRow) (Result, error) {
	var res Result
	res.Counts.TimesheetRows = len(timesheets)
	res.Counts.RosterRows = len(roster)

	records, rejects := ParseTimesheets(timesheets)
	res.Counts.MalformedTimesheets = len(rejects)
	res.Rejects = append(res.Rejects, rejects...)

	employees, rejects := ParseRoster(roster)
	res.Counts.MalformedEmployees = len(rejects)
	res.Rejects = append(res.Rejects, rejects...)

	records, res.Counts.DuplicateRecords = Deduplicate(records)

	intervals := make([]attendance.CleanedInterval, 0, len(records))
	for _, rec := range records {
		iv, err := p.imputer.Impute(rec)
		if err != nil {
			switch {
			case errors.Is(err, attendance.ErrUnprocessableRecord):
				res.Counts.Unprocessable++
			case errors.Is(err, attendance.ErrEmptyInterval):
				res.Counts.EmptyIntervals++
			default:
				return Result{}, fmt.Errorf("impute record %d: %w", rec.RecordID, err)
			}
			slog.Warn("Rejected timesheet record", "record_id", rec.RecordID, "employee_id", rec.EmployeeID, "error", err)
			res.Rejects = append(res.Rejects, err)
			continue
		}
		if iv.CheckInImputed {
			res.Counts.ImputedCheckIns++
		}
		if iv.CheckOutImputed {
			res.Counts.ImputedCheckOuts++
		}
		if iv.Overnight {
			res.Counts.OvernightAdjusted++
		}
		intervals = append(intervals, iv)
	}
	res.Counts.Intervals = len(intervals)
	slog.Info("Completed transforming checkin and checkout",
		"intervals", len(intervals),
		"imputed_checkins", res.Counts.ImputedCheckIns,
		"imputed_checkouts", res.Counts.ImputedCheckOuts,
		"overnight_adjusted", res.Counts.OvernightAdjusted)

	index, duplicates := NewRoster(employees)
	res.Counts.DuplicateEmployees = duplicates

	res.Intervals, res.Counts.UnmatchedIntervals = Enrich(intervals, index)

	monthly, _, err := p.aggregator.Aggregate(ctx, res.Intervals)
	if err != nil {
		return Result{}, fmt.Errorf("aggregate intervals: %w", err)
	}
	res.Monthly = monthly
	res.Counts.MonthlyGroups = len(monthly)

	res.Rates, res.Counts.UndefinedRates = CalculateRates(monthly)
	res.Counts.Rates = len(res.Rates)

	return res, nil
}
