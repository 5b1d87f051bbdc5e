package attendance

import "errors"

// Timesheet parsing errors
var (
	ErrMissingRecordID   = errors.New("record id is required")
	ErrMalformedRecordID = errors.New("record id is not an integer")
	ErrMissingEmployeeID = errors.New("employee id is required")
	ErrMalformedDate     = errors.New("date is not in YYYY-MM-DD format")
	ErrMalformedTime     = errors.New("time of day is not in HH:MM[:SS] format")
)

// Imputation errors
var (
	ErrUnprocessableRecord = errors.New("both check-in and check-out are missing")
	ErrEmptyInterval       = errors.New("check-out is not after check-in")
	ErrInvalidShiftRules   = errors.New("invalid shift rules")
)
