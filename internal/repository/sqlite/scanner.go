package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanWorkSession scans a single work session from a database row. Break rows
// are loaded separately.
func ScanWorkSession(scanner Scanner) (*WorkSession, error) {
	session := &WorkSession{}
	var timeIn string
	var timeOut sql.NullString

	err := scanner.Scan(
		&session.ID,
		&session.Date,
		&timeIn,
		&timeOut,
		&session.Status,
		&session.TotalHours,
	)
	if err != nil {
		return nil, err
	}

	session.TimeIn, err = ParseTimeFromDB(timeIn)
	if err != nil {
		return nil, err
	}
	if timeOut.Valid {
		parsed, err := ParseTimeFromDB(timeOut.String)
		if err != nil {
			return nil, err
		}
		session.TimeOut = &parsed
	}

	return session, nil
}

// ScanWorkSessions scans multiple work sessions from database rows
func ScanWorkSessions(rows Rows) ([]*WorkSession, error) {
	var sessions []*WorkSession
	for rows.Next() {
		session, err := ScanWorkSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// ScanBreak scans a single break from a database row
func ScanBreak(scanner Scanner) (*Break, error) {
	brk := &Break{}
	var startTime string
	var endTime sql.NullString

	err := scanner.Scan(
		&brk.ID,
		&brk.SessionID,
		&brk.Position,
		&startTime,
		&endTime,
	)
	if err != nil {
		return nil, err
	}

	brk.StartTime, err = ParseTimeFromDB(startTime)
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		parsed, err := ParseTimeFromDB(endTime.String)
		if err != nil {
			return nil, err
		}
		brk.EndTime = &parsed
	}

	return brk, nil
}

// ScanBreaks scans multiple breaks from database rows
func ScanBreaks(rows Rows) ([]*Break, error) {
	var breaks []*Break
	for rows.Next() {
		brk, err := ScanBreak(rows)
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, brk)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return breaks, nil
}

// ScanPendingSync scans a single pending sync entry from a database row
func ScanPendingSync(scanner Scanner) (*PendingSync, error) {
	entry := &PendingSync{}
	var enqueuedAt string

	err := scanner.Scan(
		&entry.ID,
		&entry.Op,
		&entry.Payload,
		&enqueuedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.EnqueuedAt, err = ParseTimeFromDB(enqueuedAt)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ScanPendingSyncs scans multiple pending sync entries from database rows
func ScanPendingSyncs(rows Rows) ([]*PendingSync, error) {
	var entries []*PendingSync
	for rows.Next() {
		entry, err := ScanPendingSync(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
