package branchsalary

import (
	"log/slog"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/employee"
)

// ParseTimesheets converts raw rows into attendance records. Rows that fail
// to parse are returned as rejects and never abort the batch.
func ParseTimesheets(rows []attendance.TimesheetRow) ([]attendance.AttendanceRecord, []error) {
	records := make([]attendance.AttendanceRecord, 0, len(rows))
	var rejects []error

	for _, row := range rows {
		rec, err := row.Parse()
		if err != nil {
			slog.Warn("Rejected malformed timesheet row", "line", row.Line, "error", err)
			rejects = append(rejects, err)
			continue
		}
		records = append(records, rec)
	}
	return records, rejects
}

// ParseRoster converts raw roster rows into employee records.
func ParseRoster(rows []employee.RosterRow) ([]employee.EmployeeRecord, []error) {
	records := make([]employee.EmployeeRecord, 0, len(rows))
	var rejects []error

	for _, row := range rows {
		rec, err := row.Parse()
		if err != nil {
			slog.Warn("Rejected malformed roster row", "line", row.Line, "error", err)
			rejects = append(rejects, err)
			continue
		}
		records = append(records, rec)
	}
	return records, rejects
}
