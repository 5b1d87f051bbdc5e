package employee

import (
	"strings"

	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const SourceName = "employees"

// RosterRow is an employee roster row exactly as the source delivered it.
type RosterRow struct {
	Line       int
	EmployeeID string
	BranchID   string
	Salary     string
}

func (r RosterRow) Parse() (EmployeeRecord, error) {
	rowErr := func(field string, err error) error {
		return &validator.RowError{Source: SourceName, Line: r.Line, Field: field, Err: err}
	}

	employeeID := strings.TrimSpace(r.EmployeeID)
	if validator.IsNull(employeeID) {
		return EmployeeRecord{}, rowErr("employee_id", ErrMissingEmployeeID)
	}
	branchID := strings.TrimSpace(r.BranchID)
	if validator.IsNull(branchID) {
		return EmployeeRecord{}, rowErr("branch_id", ErrMissingBranchID)
	}

	salary, err := decimal.NewFromString(strings.TrimSpace(r.Salary))
	if err != nil {
		return EmployeeRecord{}, rowErr("salary", ErrMalformedSalary)
	}
	if salary.IsNegative() {
		return EmployeeRecord{}, rowErr("salary", ErrNegativeSalary)
	}

	return EmployeeRecord{
		EmployeeID: employeeID,
		BranchID:   branchID,
		Salary:     salary,
	}, nil
}
