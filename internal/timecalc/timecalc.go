// Package timecalc holds the pure hours arithmetic for work sessions.
//
// All durations are computed in whole seconds and only converted to hours,
// rounded to 2 decimal places, at the final display or storage step. Keeping
// intermediate accumulation in seconds avoids compounding rounding error
// across multiple breaks. The validated path and the live preview path share
// the same subtraction so they can never diverge.
package timecalc

import (
	"fmt"
	"math"
	"time"

	"ojt-tracker/internal/domain"
)

// ValidatedSession is the result of a successful session validation: the
// inputs plus the derived work duration.
type ValidatedSession struct {
	Date        string
	TimeIn      time.Time
	TimeOut     time.Time
	Breaks      []domain.BreakInterval
	WorkSeconds int64
	TotalHours  float64
}

// WorkSeconds returns the net work duration in whole seconds: the session
// span minus the sum of all complete break durations. Incomplete breaks
// contribute nothing.
func WorkSeconds(timeIn, timeOut time.Time, breaks []domain.BreakInterval) int64 {
	session := timeOut.Unix() - timeIn.Unix()
	var breakSeconds int64
	for _, b := range breaks {
		breakSeconds += b.Seconds()
	}
	return session - breakSeconds
}

// RoundHours converts whole seconds to hours rounded to 2 decimal places.
func RoundHours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}

// ComputeLiveHours computes a preview of total hours, tolerant of partial or
// invalid input: it returns 0.00 instead of failing. Used for live display
// while the user is still filling in a manual entry; full validation runs
// before anything is stored.
func ComputeLiveHours(timeIn time.Time, timeOut *time.Time, breaks []domain.BreakInterval) float64 {
	if timeIn.IsZero() || timeOut == nil || timeOut.IsZero() {
		return 0
	}
	if !timeOut.After(timeIn) {
		return 0
	}
	seconds := WorkSeconds(timeIn, *timeOut, breaks)
	if seconds < 0 {
		return 0
	}
	return RoundHours(seconds)
}

// TotalBreakSeconds returns the summed duration of all complete breaks in
// whole seconds.
func TotalBreakSeconds(breaks []domain.BreakInterval) int64 {
	var total int64
	for _, b := range breaks {
		total += b.Seconds()
	}
	return total
}

// FormatHours formats an hours value the way it is stored: 2 decimal places.
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

// FormatDuration formats seconds as a human-readable string like "7h 30m" or "45m".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// CombineDateTime builds a local wall-clock timestamp from a calendar date
// string (domain.DateFormat) and a clock string ("15:04").
func CombineDateTime(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(domain.DateFormat, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.Local), nil
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
