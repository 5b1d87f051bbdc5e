package attendance

import "context"

// TimesheetSource yields every raw timesheet row of the snapshot being processed.
type TimesheetSource interface {
	ListTimesheets(ctx context.Context) ([]TimesheetRow, error)
}
