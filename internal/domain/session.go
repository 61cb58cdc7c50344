package domain

import (
	"time"
)

// SessionStatus represents the lifecycle state of a work session.
type SessionStatus string

const (
	// StatusOngoing means the session is clocked in and not on a break.
	StatusOngoing SessionStatus = "ongoing"
	// StatusOnBreak means the last break interval is still open.
	StatusOnBreak SessionStatus = "on_break"
	// StatusCompleted means the session was clocked out normally.
	StatusCompleted SessionStatus = "completed"
	// StatusAutoClosed means the session was closed without an explicit clock-out.
	StatusAutoClosed SessionStatus = "auto_closed"
)

// DateFormat is the calendar date layout used for WorkSession.Date.
const DateFormat = "2006-01-02"

// WorkSession represents one clock-in-to-clock-out period in the domain model.
// This is a pure domain model without database-specific concerns.
type WorkSession struct {
	ID         string
	Date       string // calendar date, DateFormat layout
	TimeIn     time.Time
	TimeOut    *time.Time
	Breaks     []BreakInterval
	Status     SessionStatus
	TotalHours float64
}

// NewWorkSession creates a new open WorkSession starting at timeIn.
//
// The Date field is taken literally from the local date component of timeIn
// rather than re-derived through a timezone conversion. This is a deliberate
// contract: it keeps a session on the calendar day the user clocked in, even
// near UTC day boundaries.
func NewWorkSession(id string, timeIn time.Time) WorkSession {
	return WorkSession{
		ID:     id,
		Date:   timeIn.Format(DateFormat),
		TimeIn: timeIn,
		Status: StatusOngoing,
	}
}

// IsOpen returns true if the session has not been clocked out yet.
func (ws WorkSession) IsOpen() bool {
	return ws.TimeOut == nil
}

// OnBreak returns true if the last break interval has been started but not
// ended. Status == StatusOnBreak must hold exactly when this is true.
func (ws WorkSession) OnBreak() bool {
	if len(ws.Breaks) == 0 {
		return false
	}
	last := ws.Breaks[len(ws.Breaks)-1]
	return !last.Start.IsZero() && last.End == nil
}

// StartBreak appends a new open break starting at start and moves the session
// to StatusOnBreak. It is a no-op if a break is already open.
func (ws WorkSession) StartBreak(start time.Time) WorkSession {
	if ws.OnBreak() {
		return ws
	}
	ws.Breaks = append(append([]BreakInterval(nil), ws.Breaks...), BreakInterval{Start: start})
	ws.Status = StatusOnBreak
	return ws
}

// EndBreak closes the currently open break at end and moves the session back
// to StatusOngoing. It is a no-op if no break is open.
func (ws WorkSession) EndBreak(end time.Time) WorkSession {
	if !ws.OnBreak() {
		return ws
	}
	breaks := append([]BreakInterval(nil), ws.Breaks...)
	breaks[len(breaks)-1].End = &end
	ws.Breaks = breaks
	ws.Status = StatusOngoing
	return ws
}

// Close sets the clock-out time and final status. The caller is responsible
// for recomputing TotalHours afterwards.
func (ws WorkSession) Close(timeOut time.Time, status SessionStatus) WorkSession {
	ws.TimeOut = &timeOut
	ws.Status = status
	return ws
}

// IsValid checks if the session has structurally valid data. Business rules
// (break bounds, overlap, minimum work time) are enforced by the validation
// package, not here.
func (ws WorkSession) IsValid() bool {
	if ws.ID == "" {
		return false
	}
	if ws.TimeIn.IsZero() {
		return false
	}
	if ws.TimeOut != nil && !ws.TimeOut.After(ws.TimeIn) {
		return false
	}
	if ws.Status == StatusOnBreak != ws.OnBreak() {
		return false
	}
	return true
}
