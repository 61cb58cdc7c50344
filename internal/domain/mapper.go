package domain

import (
	"encoding/json"

	"ojt-tracker/internal/repository/sqlite"
)

// WorkSessionMapper handles conversion between domain and database WorkSession models.
type WorkSessionMapper struct{}

// NewWorkSessionMapper creates a new WorkSessionMapper instance.
func NewWorkSessionMapper() *WorkSessionMapper {
	return &WorkSessionMapper{}
}

// ToDatabase converts a domain WorkSession to a database WorkSession.
func (m *WorkSessionMapper) ToDatabase(session WorkSession) sqlite.WorkSession {
	breaks := make([]sqlite.Break, len(session.Breaks))
	for i, b := range session.Breaks {
		breaks[i] = sqlite.Break{
			SessionID: session.ID,
			Position:  i,
			StartTime: b.Start,
			EndTime:   b.End,
		}
	}
	return sqlite.WorkSession{
		ID:         session.ID,
		Date:       session.Date,
		TimeIn:     session.TimeIn,
		TimeOut:    session.TimeOut,
		Status:     string(session.Status),
		TotalHours: session.TotalHours,
		Breaks:     breaks,
	}
}

// FromDatabase converts a database WorkSession to a domain WorkSession.
func (m *WorkSessionMapper) FromDatabase(dbSession sqlite.WorkSession) WorkSession {
	breaks := make([]BreakInterval, len(dbSession.Breaks))
	for i, b := range dbSession.Breaks {
		breaks[i] = BreakInterval{
			Start: b.StartTime,
			End:   b.EndTime,
		}
	}
	return WorkSession{
		ID:         dbSession.ID,
		Date:       dbSession.Date,
		TimeIn:     dbSession.TimeIn,
		TimeOut:    dbSession.TimeOut,
		Breaks:     breaks,
		Status:     SessionStatus(dbSession.Status),
		TotalHours: dbSession.TotalHours,
	}
}

// FromDatabaseSlice converts a slice of database WorkSessions to domain WorkSessions.
func (m *WorkSessionMapper) FromDatabaseSlice(dbSessions []*sqlite.WorkSession) []WorkSession {
	sessions := make([]WorkSession, len(dbSessions))
	for i, s := range dbSessions {
		sessions[i] = m.FromDatabase(*s)
	}
	return sessions
}

// PendingSyncMapper handles conversion between domain and database PendingSync models.
type PendingSyncMapper struct{}

// NewPendingSyncMapper creates a new PendingSyncMapper instance.
func NewPendingSyncMapper() *PendingSyncMapper {
	return &PendingSyncMapper{}
}

// ToDatabase converts a domain PendingSync to a database PendingSync.
func (m *PendingSyncMapper) ToDatabase(entry PendingSync) sqlite.PendingSync {
	return sqlite.PendingSync{
		ID:         entry.ID,
		Op:         string(entry.Op),
		Payload:    string(entry.Payload),
		EnqueuedAt: entry.EnqueuedAt,
	}
}

// FromDatabase converts a database PendingSync to a domain PendingSync.
func (m *PendingSyncMapper) FromDatabase(dbEntry sqlite.PendingSync) PendingSync {
	return PendingSync{
		ID:         dbEntry.ID,
		Op:         SyncOp(dbEntry.Op),
		Payload:    json.RawMessage(dbEntry.Payload),
		EnqueuedAt: dbEntry.EnqueuedAt,
	}
}

// FromDatabaseSlice converts a slice of database PendingSync rows to domain entries.
func (m *PendingSyncMapper) FromDatabaseSlice(dbEntries []*sqlite.PendingSync) []PendingSync {
	entries := make([]PendingSync, len(dbEntries))
	for i, e := range dbEntries {
		entries[i] = m.FromDatabase(*e)
	}
	return entries
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	WorkSession *WorkSessionMapper
	PendingSync *PendingSyncMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		WorkSession: NewWorkSessionMapper(),
		PendingSync: NewPendingSyncMapper(),
	}
}
