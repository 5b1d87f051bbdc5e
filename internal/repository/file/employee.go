package file

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/employee"
)

var rosterColumns = map[string][]string{
	"employee_id": {"employee_id", "employe_id"},
	"branch_id":   {"branch_id"},
	"salary":      {"salary"},
}

type rosterFile struct {
	path string
}

func NewRosterFile(path string) employee.RosterSource {
	return &rosterFile{path: path}
}

// ListEmployees returns roster rows in file order.
func (f *rosterFile) ListEmployees(ctx context.Context) ([]employee.RosterRow, error) {
	rows, err := readTable(f.path)
	if err != nil {
		slog.Error("Failed to load employees data", "path", f.path, "error", err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, f.path)
	}
	h, err := newHeader(rows[0], rosterColumns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}

	out := make([]employee.RosterRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if blank(row) {
			continue
		}
		out = append(out, employee.RosterRow{
			Line:       i + 2,
			EmployeeID: h.get(row, "employee_id"),
			BranchID:   h.get(row, "branch_id"),
			Salary:     h.get(row, "salary"),
		})
	}

	slog.Info("Loaded employees data", "path", f.path, "records", len(out))
	return out, nil
}
