package postgresql

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var branchSalaryColumns = []string{"year", "month", "branch_id", "hours_diff", "salary", "salary_per_hour"}

type branchSalaryRepository struct {
	db    *database.DB
	table pgx.Identifier
}

// NewBranchSalaryRepository targets table, optionally schema-qualified
// ("reporting.branch_salary").
func NewBranchSalaryRepository(db *database.DB, table string) (branchsalary.RateRepository, error) {
	parts := strings.Split(strings.TrimSpace(table), ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: %q", branchsalary.ErrInvalidDestination, table)
		}
	}
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: %q", branchsalary.ErrInvalidDestination, table)
	}
	return &branchSalaryRepository{db: db, table: pgx.Identifier(parts)}, nil
}

// Replace deletes every row and copies the new result set in within one
// transaction. Readers see either the old or the new set, never a mix.
func (r *branchSalaryRepository) Replace(ctx context.Context, rates []branchsalary.BranchMonthRate) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		deleted, err := tx.Exec(ctx, "DELETE FROM "+r.table.Sanitize())
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", r.table.Sanitize(), err)
		}

		rows := make([][]any, 0, len(rates))
		for _, rt := range rates {
			rows = append(rows, []any{
				int32(rt.Year),
				int32(rt.Month),
				rt.BranchID,
				toNumeric(&rt.TotalHours),
				toNumeric(&rt.TotalSalary),
				toNumeric(rt.SalaryPerHour),
			})
		}

		copied, err := tx.CopyFrom(ctx, r.table, branchSalaryColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("failed to copy rates into %s: %w", r.table.Sanitize(), err)
		}

		slog.Info("Replaced destination table",
			"table", r.table.Sanitize(),
			"deleted", deleted.RowsAffected(),
			"inserted", copied)
		return nil
	})
}

func (r *branchSalaryRepository) List(ctx context.Context, filter branchsalary.RateFilter) ([]branchsalary.BranchMonthRate, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)))
	}
	if filter.Month != 0 {
		args = append(args, filter.Month)
		conditions = append(conditions, fmt.Sprintf("month = $%d", len(args)))
	}
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		conditions = append(conditions, fmt.Sprintf("branch_id = $%d", len(args)))
	}

	query := `
		SELECT year, month, branch_id, hours_diff::text, salary::text, salary_per_hour::text
		FROM ` + r.table.Sanitize()
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY year, month, branch_id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list branch salary rates: %w", err)
	}
	defer rows.Close()

	out := []branchsalary.BranchMonthRate{}
	for rows.Next() {
		var (
			rt            branchsalary.BranchMonthRate
			hours, salary string
			perHour       *string
		)
		if err := rows.Scan(&rt.Year, &rt.Month, &rt.BranchID, &hours, &salary, &perHour); err != nil {
			return nil, fmt.Errorf("failed to scan branch salary rate: %w", err)
		}
		if rt.TotalHours, err = decimal.NewFromString(hours); err != nil {
			return nil, fmt.Errorf("invalid hours_diff %q: %w", hours, err)
		}
		if rt.TotalSalary, err = decimal.NewFromString(salary); err != nil {
			return nil, fmt.Errorf("invalid salary %q: %w", salary, err)
		}
		if perHour != nil {
			v, err := decimal.NewFromString(*perHour)
			if err != nil {
				return nil, fmt.Errorf("invalid salary_per_hour %q: %w", *perHour, err)
			}
			rt.SalaryPerHour = &v
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate branch salary rates: %w", err)
	}

	return out, nil
}

// toNumeric converts a decimal for binary COPY. nil becomes SQL NULL.
func toNumeric(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}
