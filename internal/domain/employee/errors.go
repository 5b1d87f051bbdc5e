package employee

import "errors"

var (
	ErrMissingEmployeeID = errors.New("employee id is required")
	ErrMissingBranchID   = errors.New("branch id is required")
	ErrMalformedSalary   = errors.New("salary is not a number")
	ErrNegativeSalary    = errors.New("salary must not be negative")
)
