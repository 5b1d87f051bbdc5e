package employee

import "context"

// RosterSource yields the employee roster. Rows must come back in a stable
// order; when an employee appears twice the first row wins.
type RosterSource interface {
	ListEmployees(ctx context.Context) ([]RosterRow, error)
}
