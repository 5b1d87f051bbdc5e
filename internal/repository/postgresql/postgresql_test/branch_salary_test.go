package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/cmlabs-hris/branch-salary-etl/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimesheetAndEmployeeSources(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO timesheets (timesheet_id, employee_id, date, checkin, checkout) VALUES
			(2, '10', '2024-01-02', '09:00:00', NULL),
			(1, '10', '2024-01-01', NULL, '17:30:00')`)
	require.NoError(t, err)
	_, err = setup.DB.Exec(ctx, `
		INSERT INTO employees (employee_id, branch_id, salary) VALUES
			('10', 'B1', 3000.00),
			('11', 'B2', 4000.50)`)
	require.NoError(t, err)

	timesheets, err := postgresql.NewTimesheetRepository(setup.DB).ListTimesheets(ctx)
	require.NoError(t, err)
	require.Len(t, timesheets, 2)
	assert.Equal(t, "1", timesheets[0].RecordID)
	assert.Equal(t, "2024-01-01", timesheets[0].Date)
	assert.Equal(t, "", timesheets[0].CheckIn)
	assert.Equal(t, "17:30:00", timesheets[0].CheckOut)
	assert.Equal(t, "", timesheets[1].CheckOut)

	roster, err := postgresql.NewEmployeeRepository(setup.DB).ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "B1", roster[0].BranchID)
	assert.Equal(t, "4000.50", roster[1].Salary)
}

func TestBranchSalaryRepository_ReplaceAndList(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	repo, err := postgresql.NewBranchSalaryRepository(setup.DB, "branch_salary")
	require.NoError(t, err)

	rate := decimal.RequireFromString("259.259259")
	first := []branchsalary.BranchMonthRate{
		{Year: 2024, Month: 1, BranchID: "B1", TotalHours: decimal.NewFromInt(27), TotalSalary: decimal.NewFromInt(7000), SalaryPerHour: &rate},
		{Year: 2024, Month: 2, BranchID: "B2", TotalHours: decimal.Zero, TotalSalary: decimal.NewFromInt(5000)},
	}
	require.NoError(t, repo.Replace(ctx, first))

	got, err := repo.List(ctx, branchsalary.RateFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].SalaryPerHour)
	assert.True(t, rate.Equal(*got[0].SalaryPerHour))
	assert.Nil(t, got[1].SalaryPerHour)

	filtered, err := repo.List(ctx, branchsalary.RateFilter{Year: 2024, Month: 2})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "B2", filtered[0].BranchID)

	// A second run replaces the whole table.
	require.NoError(t, repo.Replace(ctx, first[:1]))
	got, err = repo.List(ctx, branchsalary.RateFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNewBranchSalaryRepository_InvalidTable(t *testing.T) {
	for _, table := range []string{"", "a..b", "a.b.c", " "} {
		_, err := postgresql.NewBranchSalaryRepository(nil, table)
		assert.ErrorIs(t, err, branchsalary.ErrInvalidDestination, table)
	}
}
