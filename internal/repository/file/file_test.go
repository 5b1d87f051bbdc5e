package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTimesheetFile_CSV(t *testing.T) {
	path := writeFile(t, "timesheets.csv", ""+
		"timesheet_id,employee_id,date,checkin,checkout\n"+
		"1,E1,2024-01-02,08:00:00,17:00:00\n"+
		"\n"+
		"2,E2,2024-01-02,,NaN\n")

	rows, err := NewTimesheetFile(path).ListTimesheets(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "1", rows[0].RecordID)
	assert.Equal(t, "E1", rows[0].EmployeeID)
	assert.Equal(t, "08:00:00", rows[0].CheckIn)
	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "", rows[1].CheckIn)
	assert.Equal(t, "NaN", rows[1].CheckOut)
}

func TestRosterFile_AcceptsLegacyColumnName(t *testing.T) {
	path := writeFile(t, "employees.csv", ""+
		"employe_id,branch_id,salary\n"+
		"E1,B1,3000\n"+
		"E2,B1,4000.50\n")

	rows, err := NewRosterFile(path).ListEmployees(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "E1", rows[0].EmployeeID)
	assert.Equal(t, "4000.50", rows[1].Salary)
}

func TestRosterFile_MissingColumn(t *testing.T) {
	path := writeFile(t, "employees.csv", "employee_id,salary\nE1,3000\n")

	_, err := NewRosterFile(path).ListEmployees(context.Background())

	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "branch_id")
}

func TestTimesheetFile_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "timesheets.json", "[]")

	_, err := NewTimesheetFile(path).ListTimesheets(context.Background())

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTimesheetFile_EmptyFile(t *testing.T) {
	path := writeFile(t, "timesheets.csv", "")

	_, err := NewTimesheetFile(path).ListTimesheets(context.Background())

	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestRosterFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"employee_id", "branch_id", "salary"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"E1", "B1", "3000"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"E2", "B2"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := NewRosterFile(path).ListEmployees(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "3000", rows[0].Salary)
	assert.Equal(t, "B2", rows[1].BranchID)
	assert.Equal(t, "", rows[1].Salary)
}

func TestTimesheetFile_XLSXNativeDatesAndTimes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesheets.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"timesheet_id", "employee_id", "date", "checkin", "checkout"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{
		1, "E1", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 9 * time.Hour, "17:30:00",
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{
		2, "E1", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), 22*time.Hour + 15*time.Minute, nil,
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{3, "E2", "2024-01-04", "08:00", "16:00"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := NewTimesheetFile(path).ListTimesheets(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "1", rows[0].RecordID)
	assert.Equal(t, "2024-01-02", rows[0].Date)
	assert.Equal(t, "09:00:00", rows[0].CheckIn)
	assert.Equal(t, "17:30:00", rows[0].CheckOut)

	assert.Equal(t, "2024-01-03", rows[1].Date)
	assert.Equal(t, "22:15:00", rows[1].CheckIn)
	assert.Equal(t, "", rows[1].CheckOut)

	assert.Equal(t, "2024-01-04", rows[2].Date)
	assert.Equal(t, "08:00", rows[2].CheckIn)

	for _, row := range rows {
		_, err := row.Parse()
		assert.NoError(t, err, "line %d", row.Line)
	}
}

func TestSerialCells(t *testing.T) {
	assert.Equal(t, "2024-01-02", serialDate("45293"))
	assert.Equal(t, "2024-01-02", serialDate("45293.75"))
	assert.Equal(t, "2024-01-02", serialDate("2024-01-02"))
	assert.Equal(t, "", serialDate(""))

	assert.Equal(t, "09:00:00", serialClock("0.375"))
	assert.Equal(t, "18:00:00", serialClock("45293.75"))
	assert.Equal(t, "00:00:00", serialClock("0.99999999"))
	assert.Equal(t, "09:00", serialClock("09:00"))
	assert.Equal(t, "", serialClock(""))
}

func sampleRates() []branchsalary.BranchMonthRate {
	rate := decimal.NewFromInt(20)
	return []branchsalary.BranchMonthRate{
		{Year: 2024, Month: 1, BranchID: "B1", TotalHours: decimal.NewFromInt(350), TotalSalary: decimal.NewFromInt(7000), SalaryPerHour: &rate},
		{Year: 2024, Month: 2, BranchID: "B2", TotalHours: decimal.Zero, TotalSalary: decimal.NewFromInt(3000)},
	}
}

func TestWriteRatesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRatesCSV(&buf, sampleRates()))

	want := "" +
		"year,month,branch_id,hours_diff,salary,salary_per_hour\n" +
		"2024,1,B1,350.000000,7000,20.000000\n" +
		"2024,2,B2,0.000000,3000,\n"
	assert.Equal(t, want, buf.String())
}

func TestRateCSV_ReplaceAndList(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "branch_salary.csv")
	repo := NewRateCSV(path)

	empty, err := repo.List(ctx, branchsalary.RateFilter{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Replace(ctx, sampleRates()))
	all, err := repo.List(ctx, branchsalary.RateFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].SalaryPerHour.Equal(decimal.NewFromInt(20)))
	assert.Nil(t, all[1].SalaryPerHour)

	filtered, err := repo.List(ctx, branchsalary.RateFilter{Year: 2024, Month: 2})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "B2", filtered[0].BranchID)

	// a second replace drops rows the new result set does not contain
	require.NoError(t, repo.Replace(ctx, sampleRates()[:1]))
	all, err = repo.List(ctx, branchsalary.RateFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging files must not be left behind")
}
