package domain

import (
	"time"
)

// BreakInterval represents one pause within a work session. End is nil while
// the break is ongoing. Insertion order within a session is chronological
// order.
type BreakInterval struct {
	Start time.Time
	End   *time.Time
}

// IsComplete returns true if both start and end are specified.
func (b BreakInterval) IsComplete() bool {
	return !b.Start.IsZero() && b.End != nil
}

// Seconds returns the break duration in whole seconds, or 0 if the break is
// not complete.
func (b BreakInterval) Seconds() int64 {
	if !b.IsComplete() {
		return 0
	}
	return b.End.Unix() - b.Start.Unix()
}

// Overlaps reports whether two break intervals overlap in time, treating each
// as a half-open interval [start, end).
func (b BreakInterval) Overlaps(other BreakInterval) bool {
	if !b.IsComplete() || !other.IsComplete() {
		return false
	}
	return b.Start.Before(*other.End) && other.Start.Before(*b.End)
}
