package employee

import "github.com/shopspring/decimal"

// EmployeeRecord is the roster entry used to attach a branch and a monthly
// salary to attendance.
type EmployeeRecord struct {
	EmployeeID string
	BranchID   string
	Salary     decimal.Decimal
}
