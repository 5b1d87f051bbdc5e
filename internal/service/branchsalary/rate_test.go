package branchsalary

import (
	"testing"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRates_SumOverSum(t *testing.T) {
	monthly := []branchsalary.MonthlyEmployeeHours{
		{Year: 2024, Month: 1, BranchID: "B1", Salary: decimal.NewFromInt(3000), TotalSeconds: 150 * 3600},
		{Year: 2024, Month: 1, BranchID: "B1", Salary: decimal.NewFromInt(4000), TotalSeconds: 200 * 3600},
	}

	rates, undefined := CalculateRates(monthly)

	require.Len(t, rates, 1)
	assert.Zero(t, undefined)
	assert.Equal(t, "B1", rates[0].BranchID)
	require.NotNil(t, rates[0].SalaryPerHour)
	assertDecimal(t, "20", *rates[0].SalaryPerHour)
	assertDecimal(t, "350", rates[0].TotalHours)
	assertDecimal(t, "7000", rates[0].TotalSalary)
}

func TestCalculateRates_ZeroHoursIsUndefined(t *testing.T) {
	monthly := []branchsalary.MonthlyEmployeeHours{
		{Year: 2024, Month: 1, BranchID: "B1", Salary: decimal.NewFromInt(3000), TotalSeconds: 0},
	}

	rates, undefined := CalculateRates(monthly)

	require.Len(t, rates, 1)
	assert.Equal(t, 1, undefined)
	assert.True(t, rates[0].Undefined())
	assert.Nil(t, rates[0].SalaryPerHour)
}

func TestCalculateRates_SortedAndRounded(t *testing.T) {
	monthly := []branchsalary.MonthlyEmployeeHours{
		{Year: 2024, Month: 2, BranchID: "A", Salary: decimal.NewFromInt(1000), TotalSeconds: 3 * 3600},
		{Year: 2023, Month: 12, BranchID: "Z", Salary: decimal.NewFromInt(100), TotalSeconds: 3600},
		{Year: 2024, Month: 1, BranchID: "B", Salary: decimal.NewFromInt(100), TotalSeconds: 3600},
		{Year: 2024, Month: 1, BranchID: "A", Salary: decimal.NewFromInt(100), TotalSeconds: 3600},
	}

	rates, _ := CalculateRates(monthly)

	require.Len(t, rates, 4)
	assert.Equal(t, 2023, rates[0].Year)
	assert.Equal(t, "A", rates[1].BranchID)
	assert.Equal(t, "B", rates[2].BranchID)
	assert.Equal(t, 2, rates[3].Month)
	// 1000 / 3 rounded to six places
	assertDecimal(t, "333.333333", *rates[3].SalaryPerHour)
}
