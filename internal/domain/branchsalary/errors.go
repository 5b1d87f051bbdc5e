package branchsalary

import "errors"

var (
	ErrZeroHours          = errors.New("branch-month has no worked hours")
	ErrNoRunYet           = errors.New("no pipeline run has completed yet")
	ErrRunInProgress      = errors.New("a pipeline run is already in progress")
	ErrRatesUnavailable   = errors.New("destination does not support reading rates")
	ErrInvalidDestination = errors.New("invalid destination table")
)
