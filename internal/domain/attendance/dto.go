package attendance

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/validator"
)

const SourceName = "timesheets"

// TimesheetRow is a timesheet row exactly as the source delivered it.
type TimesheetRow struct {
	Line       int
	RecordID   string
	EmployeeID string
	Date       string
	CheckIn    string
	CheckOut   string
}

// Parse converts the raw row into an AttendanceRecord. Any malformed field
// rejects the whole row with a *validator.RowError.
func (r TimesheetRow) Parse() (AttendanceRecord, error) {
	rowErr := func(field string, err error) error {
		return &validator.RowError{Source: SourceName, Line: r.Line, Field: field, Err: err}
	}

	idStr := strings.TrimSpace(r.RecordID)
	if validator.IsNull(idStr) {
		return AttendanceRecord{}, rowErr("record_id", ErrMissingRecordID)
	}
	if !validator.IsNumeric(idStr) {
		return AttendanceRecord{}, rowErr("record_id", ErrMalformedRecordID)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return AttendanceRecord{}, rowErr("record_id", ErrMalformedRecordID)
	}

	employeeID := strings.TrimSpace(r.EmployeeID)
	if validator.IsNull(employeeID) {
		return AttendanceRecord{}, rowErr("employee_id", ErrMissingEmployeeID)
	}

	date, ok := validator.IsValidDate(strings.TrimSpace(r.Date))
	if !ok {
		return AttendanceRecord{}, rowErr("date", ErrMalformedDate)
	}

	checkIn, err := parseOptionalTime(r.CheckIn)
	if err != nil {
		return AttendanceRecord{}, rowErr("checkin", err)
	}
	checkOut, err := parseOptionalTime(r.CheckOut)
	if err != nil {
		return AttendanceRecord{}, rowErr("checkout", err)
	}

	return AttendanceRecord{
		RecordID:   id,
		EmployeeID: employeeID,
		Date:       date.UTC(),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}, nil
}

func parseOptionalTime(s string) (*TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if validator.IsNull(s) {
		return nil, nil
	}
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return nil, err
	}
	if time.Duration(t) >= 24*time.Hour {
		return nil, ErrMalformedTime
	}
	return &t, nil
}
