// Package schedule is the planning engine: recurrence expansion, backlog
// scoring, day selection and timeline/conflict building. Everything here is
// pure — callers fetch tasks beforehand, pass values in and persist results
// afterward; the package holds no state and re-derives its output on every
// call.
package schedule

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format for times of day.
	ClockLayout = "15:04"
)

// ParseDate parses a "YYYY-MM-DD" string as a local wall-clock date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// FormatDate renders a date back to its wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// startOfDay truncates to local midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay moves to the last instant of the same calendar day, so that
// inclusive window and until bounds compare correctly.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// DaysBetween returns the whole calendar days from one date to the other,
// negative when to is before from. The diff is taken on the calendar, not on
// elapsed time, so DST transitions cannot skew it.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	// Move to the next month, roll back a day.
	firstOfNext := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// MinutesOfDay parses a zero-padded "HH:MM" string into minutes since
// midnight. Malformed input reports ok=false.
func MinutesOfDay(clock string) (int, bool) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// FormatMinutes renders minutes since midnight as "HH:MM".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// weekdayIn reports whether the date's weekday (0 = Sunday) is listed.
func weekdayIn(d time.Time, days []int) bool {
	wd := int(d.Weekday())
	for _, day := range days {
		if day == wd {
			return true
		}
	}
	return false
}
