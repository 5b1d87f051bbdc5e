package branchsalary

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
)

// CheckInRule fills a missing check-in from the check-out clock time.
type CheckInRule struct {
	Name    string
	Matches func(checkOut attendance.TimeOfDay) bool
	CheckIn attendance.TimeOfDay
}

// CheckOutRule fills a missing check-out from the check-in clock time.
// DayOffset moves the check-out to a later calendar day.
type CheckOutRule struct {
	Name      string
	Matches   func(checkIn attendance.TimeOfDay) bool
	CheckOut  attendance.TimeOfDay
	DayOffset int
}

// CheckInRules builds the ordered check-in table. The first match wins.
func CheckInRules(r attendance.ShiftRules) []CheckInRule {
	return []CheckInRule{
		{
			Name:    "overnight_shift",
			Matches: func(out attendance.TimeOfDay) bool { return out <= r.EarlyCheckOutCutoff },
			CheckIn: r.EarlyCheckIn,
		},
		{
			Name:    "late_clock_in",
			Matches: func(attendance.TimeOfDay) bool { return true },
			CheckIn: r.DefaultCheckIn,
		},
	}
}

// CheckOutRules builds the ordered check-out table. The first match wins.
func CheckOutRules(r attendance.ShiftRules) []CheckOutRule {
	return []CheckOutRule{
		{
			Name:     "day_shift",
			Matches:  func(in attendance.TimeOfDay) bool { return in <= r.DayCheckInCutoff },
			CheckOut: r.DayCheckOut,
		},
		{
			Name:      "night_shift",
			Matches:   func(in attendance.TimeOfDay) bool { return in > r.DayCheckInCutoff },
			CheckOut:  r.NightCheckOut,
			DayOffset: 1,
		},
	}
}

// TimeImputer turns a deduplicated record into a well-formed interval.
type TimeImputer struct {
	checkIn  []CheckInRule
	checkOut []CheckOutRule
}

func NewTimeImputer(rules attendance.ShiftRules) *TimeImputer {
	return &TimeImputer{
		checkIn:  CheckInRules(rules),
		checkOut: CheckOutRules(rules),
	}
}

// Impute resolves the check-in first, then the check-out, then corrects
// check-outs stamped on the wrong day.
func (ti *TimeImputer) Impute(rec attendance.AttendanceRecord) (attendance.CleanedInterval, error) {
	if rec.CheckIn == nil && rec.CheckOut == nil {
		return attendance.CleanedInterval{}, fmt.Errorf("record %d: %w", rec.RecordID, attendance.ErrUnprocessableRecord)
	}

	out := attendance.CleanedInterval{
		RecordID:   rec.RecordID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
	}

	checkIn := rec.CheckIn
	if checkIn == nil {
		for _, rule := range ti.checkIn {
			if rule.Matches(*rec.CheckOut) {
				v := rule.CheckIn
				checkIn = &v
				out.CheckInImputed = true
				break
			}
		}
	}
	out.CheckIn = checkIn.On(rec.Date)

	if rec.CheckOut == nil {
		for _, rule := range ti.checkOut {
			if rule.Matches(*checkIn) {
				out.CheckOut = rule.CheckOut.On(rec.Date.AddDate(0, 0, rule.DayOffset))
				out.CheckOutImputed = true
				break
			}
		}
	} else {
		out.CheckOut = rec.CheckOut.On(rec.Date)
		if out.CheckOut.Before(out.CheckIn) {
			out.CheckOut = out.CheckOut.AddDate(0, 0, 1)
			out.Overnight = true
		}
	}

	if !out.CheckOut.After(out.CheckIn) {
		return attendance.CleanedInterval{}, fmt.Errorf("record %d (%s to %s): %w",
			rec.RecordID, out.CheckIn.Format(time.DateTime), out.CheckOut.Format(time.DateTime), attendance.ErrEmptyInterval)
	}
	return out, nil
}
