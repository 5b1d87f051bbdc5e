package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/employee"
	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.RosterSource {
	return &employeeRepository{db: db}
}

// ListEmployees orders by the table's insertion id so that the first
// occurrence of a repeated employee id is stable across runs.
func (r *employeeRepository) ListEmployees(ctx context.Context) ([]employee.RosterRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(employee_id::text, ''), COALESCE(branch_id::text, ''), COALESCE(salary::text, '')
		FROM employees
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var out []employee.RosterRow
	for rows.Next() {
		row := employee.RosterRow{Line: len(out) + 1}
		if err := rows.Scan(&row.EmployeeID, &row.BranchID, &row.Salary); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return out, nil
}
