package planning

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// MinutesOfDay parses an "HH:MM" wall-clock string into minutes since
// midnight.
// PRE: value is in 24h HH:MM format
// POST: Returns minutes in [0, 1439], or an error for anything unparseable
func MinutesOfDay(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutesOfDay formats minutes since midnight back to "HH:MM",
// wrapping via modular arithmetic so arithmetic past midnight stays a
// valid minute-of-day.
func FormatMinutesOfDay(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
