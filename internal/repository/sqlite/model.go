package sqlite

import "time"

// WorkSession represents a work session row together with its break rows.
type WorkSession struct {
	ID         string
	Date       string
	TimeIn     time.Time
	TimeOut    *time.Time // Using pointer to allow NULL values
	Status     string
	TotalHours float64
	Breaks     []Break
}

// Break represents a single break row belonging to a work session. Position
// preserves insertion order, which is chronological order.
type Break struct {
	ID        int64
	SessionID string
	Position  int
	StartTime time.Time
	EndTime   *time.Time // Using pointer to allow NULL values
}

// PendingSync represents one queued remote mutation row.
type PendingSync struct {
	ID         string
	Op         string
	Payload    string
	EnqueuedAt time.Time
}

// Setting represents one settings key/value row.
type Setting struct {
	Key   string
	Value string
}
