package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) attendance.TimesheetSource {
	return &timesheetRepository{db: db}
}

// ListTimesheets reads every column as text so that malformed values reach
// the parser instead of failing the whole scan.
func (r *timesheetRepository) ListTimesheets(ctx context.Context) ([]attendance.TimesheetRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT timesheet_id::text, employee_id::text, date::text,
			   COALESCE(checkin::text, ''), COALESCE(checkout::text, '')
		FROM timesheets
		ORDER BY timesheet_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var out []attendance.TimesheetRow
	for rows.Next() {
		row := attendance.TimesheetRow{Line: len(out) + 1}
		if err := rows.Scan(&row.RecordID, &row.EmployeeID, &row.Date, &row.CheckIn, &row.CheckOut); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timesheets: %w", err)
	}

	return out, nil
}
