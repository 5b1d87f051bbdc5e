package branchsalary

import (
	"testing"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicate_KeepsLowestRecordID(t *testing.T) {
	records := []attendance.AttendanceRecord{
		{RecordID: 30, EmployeeID: "E1", Date: day(2024, 1, 2), CheckIn: clock(10, 0)},
		{RecordID: 10, EmployeeID: "E1", Date: day(2024, 1, 2), CheckIn: clock(8, 0)},
		{RecordID: 20, EmployeeID: "E1", Date: day(2024, 1, 2), CheckIn: clock(9, 0)},
		{RecordID: 5, EmployeeID: "E2", Date: day(2024, 1, 2), CheckIn: clock(7, 0)},
	}

	kept, dropped := Deduplicate(records)

	require.Len(t, kept, 2)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, int64(10), kept[0].RecordID)
	assert.Equal(t, "E1", kept[0].EmployeeID)
	assert.Equal(t, int64(5), kept[1].RecordID)
}

func TestDeduplicate_SameEmployeeDifferentDates(t *testing.T) {
	records := []attendance.AttendanceRecord{
		{RecordID: 2, EmployeeID: "E1", Date: day(2024, 1, 3)},
		{RecordID: 1, EmployeeID: "E1", Date: day(2024, 1, 2)},
	}

	kept, dropped := Deduplicate(records)

	require.Len(t, kept, 2)
	assert.Zero(t, dropped)
	assert.Equal(t, day(2024, 1, 2), kept[0].Date)
	assert.Equal(t, day(2024, 1, 3), kept[1].Date)
}

func TestDeduplicate_IndependentOfInputOrder(t *testing.T) {
	forward := []attendance.AttendanceRecord{
		{RecordID: 1, EmployeeID: "E1", Date: day(2024, 1, 2)},
		{RecordID: 2, EmployeeID: "E1", Date: day(2024, 1, 2)},
		{RecordID: 3, EmployeeID: "E2", Date: day(2024, 1, 2)},
		{RecordID: 4, EmployeeID: "E2", Date: day(2024, 1, 2)},
	}
	backward := make([]attendance.AttendanceRecord, len(forward))
	for i := range forward {
		backward[len(forward)-1-i] = forward[i]
	}

	a, _ := Deduplicate(forward)
	b, _ := Deduplicate(backward)

	assert.Equal(t, a, b)
	require.Len(t, a, 2)
	assert.Equal(t, int64(1), a[0].RecordID)
	assert.Equal(t, int64(3), a[1].RecordID)
}

func TestDeduplicate_Empty(t *testing.T) {
	kept, dropped := Deduplicate(nil)
	assert.Empty(t, kept)
	assert.Zero(t, dropped)
}
