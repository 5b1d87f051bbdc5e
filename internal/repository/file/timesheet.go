package file

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
)

var timesheetColumns = map[string][]string{
	"record_id":   {"timesheet_id", "record_id", "id"},
	"employee_id": {"employee_id", "employe_id"},
	"date":        {"date"},
	"checkin":     {"checkin", "check_in"},
	"checkout":    {"checkout", "check_out"},
}

type timesheetFile struct {
	path string
}

func NewTimesheetFile(path string) attendance.TimesheetSource {
	return &timesheetFile{path: path}
}

func (f *timesheetFile) ListTimesheets(ctx context.Context) ([]attendance.TimesheetRow, error) {
	rows, err := readTable(f.path)
	if err != nil {
		slog.Error("Failed to load timesheets data", "path", f.path, "error", err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, f.path)
	}
	h, err := newHeader(rows[0], timesheetColumns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}

	spreadsheet := isSpreadsheet(f.path)

	out := make([]attendance.TimesheetRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if blank(row) {
			continue
		}
		ts := attendance.TimesheetRow{
			Line:       i + 2,
			RecordID:   h.get(row, "record_id"),
			EmployeeID: h.get(row, "employee_id"),
			Date:       h.get(row, "date"),
			CheckIn:    h.get(row, "checkin"),
			CheckOut:   h.get(row, "checkout"),
		}
		if spreadsheet {
			ts.Date = serialDate(ts.Date)
			ts.CheckIn = serialClock(ts.CheckIn)
			ts.CheckOut = serialClock(ts.CheckOut)
		}
		out = append(out, ts)
	}

	slog.Info("Loaded timesheets data", "path", f.path, "records", len(out))
	return out, nil
}
