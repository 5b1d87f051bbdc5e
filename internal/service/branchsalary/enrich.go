package branchsalary

import (
	"log/slog"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/employee"
)

// Roster indexes employee records by id.
type Roster struct {
	byID map[string]employee.EmployeeRecord
}

// NewRoster builds the lookup table. When an employee id repeats, the first
// record is kept and the rest are counted as duplicates.
func NewRoster(records []employee.EmployeeRecord) (*Roster, int) {
	r := &Roster{byID: make(map[string]employee.EmployeeRecord, len(records))}
	duplicates := 0
	for _, rec := range records {
		if _, ok := r.byID[rec.EmployeeID]; ok {
			slog.Warn("Ignoring duplicate roster entry", "employee_id", rec.EmployeeID, "branch_id", rec.BranchID)
			duplicates++
			continue
		}
		r.byID[rec.EmployeeID] = rec
	}
	return r, duplicates
}

// Lookup returns the roster entry for the employee, if any.
func (r *Roster) Lookup(employeeID string) (employee.EmployeeRecord, bool) {
	rec, ok := r.byID[employeeID]
	return rec, ok
}

// Enrich attaches branch and salary to every interval. Intervals without a
// roster entry pass through with nil branch and salary.
func Enrich(intervals []attendance.CleanedInterval, roster *Roster) ([]branchsalary.EnrichedInterval, int) {
	out := make([]branchsalary.EnrichedInterval, 0, len(intervals))
	unmatched := 0

	for _, iv := range intervals {
		enriched := branchsalary.EnrichedInterval{CleanedInterval: iv}
		if rec, ok := roster.Lookup(iv.EmployeeID); ok {
			branchID := rec.BranchID
			salary := rec.Salary
			enriched.BranchID = &branchID
			enriched.Salary = &salary
		} else {
			unmatched++
		}
		out = append(out, enriched)
	}

	if unmatched > 0 {
		slog.Warn("Intervals without roster entry", "count", unmatched)
	}
	slog.Info("Merged timesheets with employees", "records", len(out))
	return out, unmatched
}
