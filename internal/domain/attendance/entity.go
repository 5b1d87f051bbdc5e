package attendance

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time expressed as the offset from midnight.
type TimeOfDay time.Duration

// Clock builds a TimeOfDay from hour, minute and second.
func Clock(hour, minute, second int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second)
}

var timeOfDayLayouts = []string{"15:04:05", "15:04"}

// ParseTimeOfDay accepts "15:04:05" and "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return Clock(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
}

// On anchors the clock time to the given calendar date.
func (t TimeOfDay) On(date time.Time) time.Time {
	return date.Add(time.Duration(t))
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// AttendanceRecord is one parsed timesheet row. CheckIn and CheckOut are nil
// when the punch is missing.
type AttendanceRecord struct {
	RecordID   int64
	EmployeeID string
	Date       time.Time
	CheckIn    *TimeOfDay
	CheckOut   *TimeOfDay
}

// CleanedInterval is a deduplicated, imputed work interval. CheckOut is
// always after CheckIn.
type CleanedInterval struct {
	RecordID   int64
	EmployeeID string
	Date       time.Time
	CheckIn    time.Time
	CheckOut   time.Time

	CheckInImputed  bool
	CheckOutImputed bool
	Overnight       bool
}

// Duration is the worked time of the interval.
func (c CleanedInterval) Duration() time.Duration {
	return c.CheckOut.Sub(c.CheckIn)
}
