package attendance

import "fmt"

// ShiftRules holds the clock thresholds used to fill in missing punches.
type ShiftRules struct {
	// A check-out at or before this time marks an overnight shift.
	EarlyCheckOutCutoff TimeOfDay
	// Check-in assumed for overnight shifts.
	EarlyCheckIn TimeOfDay
	// Check-in assumed for everything else.
	DefaultCheckIn TimeOfDay
	// A check-in at or before this time marks a day shift.
	DayCheckInCutoff TimeOfDay
	// Same-day check-out assumed for day shifts.
	DayCheckOut TimeOfDay
	// Next-day check-out assumed for night shifts.
	NightCheckOut TimeOfDay
}

// DefaultShiftRules returns the standard office schedule.
func DefaultShiftRules() ShiftRules {
	return ShiftRules{
		EarlyCheckOutCutoff: Clock(9, 0, 0),
		EarlyCheckIn:        Clock(0, 0, 0),
		DefaultCheckIn:      Clock(9, 0, 0),
		DayCheckInCutoff:    Clock(12, 0, 0),
		DayCheckOut:         Clock(18, 0, 0),
		NightCheckOut:       Clock(8, 0, 0),
	}
}

// Validate checks that imputed punches always land on the correct side of
// the punch they are derived from.
func (r ShiftRules) Validate() error {
	if r.EarlyCheckIn > r.EarlyCheckOutCutoff {
		return fmt.Errorf("%w: early check-in %s is after check-out cutoff %s",
			ErrInvalidShiftRules, r.EarlyCheckIn, r.EarlyCheckOutCutoff)
	}
	if r.DefaultCheckIn > r.EarlyCheckOutCutoff {
		return fmt.Errorf("%w: default check-in %s is after check-out cutoff %s",
			ErrInvalidShiftRules, r.DefaultCheckIn, r.EarlyCheckOutCutoff)
	}
	if r.DayCheckOut <= r.DayCheckInCutoff {
		return fmt.Errorf("%w: day check-out %s is not after check-in cutoff %s",
			ErrInvalidShiftRules, r.DayCheckOut, r.DayCheckInCutoff)
	}
	return nil
}
