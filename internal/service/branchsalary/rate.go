package branchsalary

import (
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/shopspring/decimal"
)

type branchMonth struct {
	year     int
	month    int
	branchID string
}

type rateSum struct {
	salary  decimal.Decimal
	seconds int64
}

// CalculateRates reduces monthly buckets to one salary-per-hour figure per
// (year, month, branch): the summed salary divided by the summed hours.
// A branch-month with no hours gets a nil rate instead of a division result.
func CalculateRates(monthly []branchsalary.MonthlyEmployeeHours) ([]branchsalary.BranchMonthRate, int) {
	sums := make(map[branchMonth]*rateSum)
	for _, m := range monthly {
		key := branchMonth{year: m.Year, month: m.Month, branchID: m.BranchID}
		s, ok := sums[key]
		if !ok {
			s = &rateSum{salary: decimal.Zero}
			sums[key] = s
		}
		s.salary = s.salary.Add(m.Salary)
		s.seconds += m.TotalSeconds
	}

	rates := make([]branchsalary.BranchMonthRate, 0, len(sums))
	undefined := 0
	for key, s := range sums {
		rate := branchsalary.BranchMonthRate{
			Year:        key.year,
			Month:       key.month,
			BranchID:    key.branchID,
			TotalHours:  branchsalary.HoursFromSeconds(s.seconds),
			TotalSalary: s.salary,
		}
		if s.seconds <= 0 {
			slog.Warn("Salary per hour is undefined",
				"year", key.year, "month", key.month, "branch_id", key.branchID,
				"error", branchsalary.ErrZeroHours)
			undefined++
		} else {
			perHour := s.salary.Mul(decimal.NewFromInt(3600)).
				DivRound(decimal.NewFromInt(s.seconds), branchsalary.RatePrecision)
			rate.SalaryPerHour = &perHour
		}
		rates = append(rates, rate)
	}

	sort.Slice(rates, func(i, j int) bool {
		a, b := rates[i], rates[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.BranchID < b.BranchID
	})

	slog.Info("Calculated salary per hour", "rates", len(rates), "undefined", undefined)
	return rates, undefined
}
