package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/shopspring/decimal"
)

var rateColumns = []string{"year", "month", "branch_id", "hours_diff", "salary", "salary_per_hour"}

// WriteRatesCSV renders rates in a fixed layout. An undefined rate is an
// empty cell.
func WriteRatesCSV(w io.Writer, rates []branchsalary.BranchMonthRate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rateColumns); err != nil {
		return err
	}
	for _, r := range rates {
		perHour := ""
		if r.SalaryPerHour != nil {
			perHour = r.SalaryPerHour.StringFixed(branchsalary.RatePrecision)
		}
		record := []string{
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Month),
			r.BranchID,
			r.TotalHours.StringFixed(branchsalary.RatePrecision),
			r.TotalSalary.String(),
			perHour,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type rateCSV struct {
	path string
}

// NewRateCSV returns a destination that keeps the full result set in one CSV file.
func NewRateCSV(path string) branchsalary.RateRepository {
	return &rateCSV{path: path}
}

// Replace writes to a temporary file next to the destination and renames it
// into place, so readers never see a partial file.
func (r *rateCSV) Replace(ctx context.Context, rates []branchsalary.BranchMonthRate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*")
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteRatesCSV(tmp, rates); err != nil {
		tmp.Close()
		return fmt.Errorf("write staging file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close staging file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}

	slog.Info("Replaced destination file", "path", r.path, "records", len(rates))
	return nil
}

func (r *rateCSV) List(ctx context.Context, filter branchsalary.RateFilter) ([]branchsalary.BranchMonthRate, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []branchsalary.BranchMonthRate{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	out := []branchsalary.BranchMonthRate{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		rate, err := parseRateRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", r.path, i+1, err)
		}
		if filter.Year != 0 && rate.Year != filter.Year {
			continue
		}
		if filter.Month != 0 && rate.Month != filter.Month {
			continue
		}
		if filter.BranchID != "" && rate.BranchID != filter.BranchID {
			continue
		}
		out = append(out, rate)
	}
	return out, nil
}

func parseRateRow(row []string) (branchsalary.BranchMonthRate, error) {
	if len(row) != len(rateColumns) {
		return branchsalary.BranchMonthRate{}, fmt.Errorf("expected %d columns, got %d", len(rateColumns), len(row))
	}
	year, err := strconv.Atoi(row[0])
	if err != nil {
		return branchsalary.BranchMonthRate{}, fmt.Errorf("year: %w", err)
	}
	month, err := strconv.Atoi(row[1])
	if err != nil {
		return branchsalary.BranchMonthRate{}, fmt.Errorf("month: %w", err)
	}
	hours, err := decimal.NewFromString(row[3])
	if err != nil {
		return branchsalary.BranchMonthRate{}, fmt.Errorf("hours_diff: %w", err)
	}
	salary, err := decimal.NewFromString(row[4])
	if err != nil {
		return branchsalary.BranchMonthRate{}, fmt.Errorf("salary: %w", err)
	}

	rate := branchsalary.BranchMonthRate{
		Year:        year,
		Month:       month,
		BranchID:    row[2],
		TotalHours:  hours,
		TotalSalary: salary,
	}
	if row[5] != "" {
		perHour, err := decimal.NewFromString(row[5])
		if err != nil {
			return branchsalary.BranchMonthRate{}, fmt.Errorf("salary_per_hour: %w", err)
		}
		rate.SalaryPerHour = &perHour
	}
	return rate, nil
}
