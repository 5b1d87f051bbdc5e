package branchsalary

import (
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
)

type personDay struct {
	employeeID string
	date       time.Time
}

// Deduplicate keeps exactly one record per (employee, date): the one with the
// lowest record id. The result does not depend on input order and is sorted
// by employee, date.
func Deduplicate(records []attendance.AttendanceRecord) (kept []attendance.AttendanceRecord, dropped int) {
	partitions := make(map[personDay][]attendance.AttendanceRecord, len(records))
	for _, rec := range records {
		key := personDay{employeeID: rec.EmployeeID, date: rec.Date}
		partitions[key] = append(partitions[key], rec)
	}

	kept = make([]attendance.AttendanceRecord, 0, len(partitions))
	for _, group := range partitions {
		sort.Slice(group, func(i, j int) bool {
			return group[i].RecordID < group[j].RecordID
		})
		kept = append(kept, group[0])
		dropped += len(group) - 1
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].EmployeeID != kept[j].EmployeeID {
			return kept[i].EmployeeID < kept[j].EmployeeID
		}
		return kept[i].Date.Before(kept[j].Date)
	})

	slog.Info("Removed duplicate timesheet records", "kept", len(kept), "dropped", dropped)
	return kept, dropped
}
