package sqlite

import (
	"context"
	"database/sql"

	"ojt-tracker/internal/errors"
	"ojt-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SearchOptions contains all possible work session search parameters
type SearchOptions struct {
	Date   *string
	Status *string
}

// Repository defines the interface for local durable storage operations
type Repository interface {
	// Work session operations
	CreateWorkSession(ctx context.Context, session *WorkSession) error
	GetWorkSession(ctx context.Context, id string) (*WorkSession, error)
	GetOpenWorkSession(ctx context.Context) (*WorkSession, error)
	ListWorkSessions(ctx context.Context) ([]*WorkSession, error)
	SearchWorkSessions(ctx context.Context, opts SearchOptions) ([]*WorkSession, error)
	UpdateWorkSession(ctx context.Context, session *WorkSession) error
	DeleteWorkSession(ctx context.Context, id string) error

	// Pending sync queue operations
	CreatePendingSync(ctx context.Context, entry *PendingSync) error
	ListPendingSync(ctx context.Context) ([]*PendingSync, error)
	DeletePendingSync(ctx context.Context, id string) error
	CountPendingSync(ctx context.Context) (int, error)

	// Settings key/value operations
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewPersistenceError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewPersistenceError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateWorkSession creates a new work session together with its break rows
func (r *SQLiteRepository) CreateWorkSession(ctx context.Context, session *WorkSession) error {
	query := `
	INSERT INTO work_sessions (id, date, time_in, time_out, status, total_hours)
	VALUES (?, ?, ?, ?, ?, ?)`

	err := Execute(ctx, r.db, query,
		session.ID,
		session.Date,
		FormatTimeForDB(session.TimeIn),
		FormatTimePtrForDB(session.TimeOut),
		session.Status,
		session.TotalHours,
	)
	if err != nil {
		return err
	}

	return r.replaceBreaks(ctx, session.ID, session.Breaks)
}

// GetWorkSession retrieves a work session by ID, including its breaks
func (r *SQLiteRepository) GetWorkSession(ctx context.Context, id string) (*WorkSession, error) {
	query := `
	SELECT id, date, time_in, time_out, status, total_hours
	FROM work_sessions
	WHERE id = ?`

	session, err := QuerySingle(ctx, r.db, query, ScanWorkSession, "work session", id, id)
	if err != nil {
		return nil, err
	}

	return r.attachBreaks(ctx, session)
}

// GetOpenWorkSession retrieves the session that has not been clocked out yet,
// if any. At most one session is open at a time; with historical data from
// before that rule the most recent clock-in wins.
func (r *SQLiteRepository) GetOpenWorkSession(ctx context.Context) (*WorkSession, error) {
	query := `
	SELECT id, date, time_in, time_out, status, total_hours
	FROM work_sessions
	WHERE time_out IS NULL
	ORDER BY time_in DESC
	LIMIT 1`

	session, err := QuerySingle(ctx, r.db, query, ScanWorkSession, "open work session", "current")
	if err != nil {
		return nil, err
	}

	return r.attachBreaks(ctx, session)
}

// ListWorkSessions retrieves all work sessions ordered by clock-in time
func (r *SQLiteRepository) ListWorkSessions(ctx context.Context) ([]*WorkSession, error) {
	query := `
	SELECT id, date, time_in, time_out, status, total_hours
	FROM work_sessions
	ORDER BY time_in ASC`

	sessions, err := QueryMultiple(ctx, r.db, query, ScanWorkSessions, "work sessions")
	if err != nil {
		return nil, err
	}

	return r.attachBreaksToAll(ctx, sessions)
}

// SearchWorkSessions retrieves work sessions matching the search options
func (r *SQLiteRepository) SearchWorkSessions(ctx context.Context, opts SearchOptions) ([]*WorkSession, error) {
	query := `
	SELECT id, date, time_in, time_out, status, total_hours
	FROM work_sessions
	WHERE 1=1`
	var args []interface{}

	if opts.Date != nil {
		query += ` AND date = ?`
		args = append(args, *opts.Date)
	}
	if opts.Status != nil {
		query += ` AND status = ?`
		args = append(args, *opts.Status)
	}
	query += ` ORDER BY time_in ASC`

	sessions, err := QueryMultiple(ctx, r.db, query, ScanWorkSessions, "work sessions", args...)
	if err != nil {
		return nil, err
	}

	return r.attachBreaksToAll(ctx, sessions)
}

// UpdateWorkSession updates an existing work session and replaces its breaks
func (r *SQLiteRepository) UpdateWorkSession(ctx context.Context, session *WorkSession) error {
	query := `
	UPDATE work_sessions
	SET date = ?, time_in = ?, time_out = ?, status = ?, total_hours = ?
	WHERE id = ?`

	err := ExecuteWithRowsAffected(ctx, r.db, query, "work session", session.ID,
		session.Date,
		FormatTimeForDB(session.TimeIn),
		FormatTimePtrForDB(session.TimeOut),
		session.Status,
		session.TotalHours,
		session.ID,
	)
	if err != nil {
		return err
	}

	return r.replaceBreaks(ctx, session.ID, session.Breaks)
}

// DeleteWorkSession deletes a work session and its breaks by ID
func (r *SQLiteRepository) DeleteWorkSession(ctx context.Context, id string) error {
	if err := Execute(ctx, r.db, `DELETE FROM breaks WHERE session_id = ?`, id); err != nil {
		return err
	}
	return ExecuteWithRowsAffected(ctx, r.db, `DELETE FROM work_sessions WHERE id = ?`, "work session", id, id)
}

// replaceBreaks rewrites the break rows for a session in insertion order
func (r *SQLiteRepository) replaceBreaks(ctx context.Context, sessionID string, breaks []Break) error {
	if err := Execute(ctx, r.db, `DELETE FROM breaks WHERE session_id = ?`, sessionID); err != nil {
		return err
	}

	query := `
	INSERT INTO breaks (session_id, position, start_time, end_time)
	VALUES (?, ?, ?, ?)`

	for i, b := range breaks {
		err := Execute(ctx, r.db, query,
			sessionID,
			i,
			FormatTimeForDB(b.StartTime),
			FormatTimePtrForDB(b.EndTime),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// attachBreaks loads the break rows for a single session
func (r *SQLiteRepository) attachBreaks(ctx context.Context, session *WorkSession) (*WorkSession, error) {
	query := `
	SELECT id, session_id, position, start_time, end_time
	FROM breaks
	WHERE session_id = ?
	ORDER BY position ASC`

	breaks, err := QueryMultiple(ctx, r.db, query, ScanBreaks, "breaks", session.ID)
	if err != nil {
		return nil, err
	}

	session.Breaks = make([]Break, len(breaks))
	for i, b := range breaks {
		session.Breaks[i] = *b
	}
	return session, nil
}

// attachBreaksToAll loads break rows for each session in the slice
func (r *SQLiteRepository) attachBreaksToAll(ctx context.Context, sessions []*WorkSession) ([]*WorkSession, error) {
	for _, session := range sessions {
		if _, err := r.attachBreaks(ctx, session); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// CreatePendingSync appends a queued mutation to the pending sync table
func (r *SQLiteRepository) CreatePendingSync(ctx context.Context, entry *PendingSync) error {
	query := `
	INSERT INTO pending_sync (id, op, payload, enqueued_at)
	VALUES (?, ?, ?, ?)`

	return Execute(ctx, r.db, query,
		entry.ID,
		entry.Op,
		entry.Payload,
		FormatTimeForDB(entry.EnqueuedAt),
	)
}

// ListPendingSync retrieves all queued mutations in enqueue order. Ordering
// by rowid preserves insertion order even when entries share a timestamp.
func (r *SQLiteRepository) ListPendingSync(ctx context.Context) ([]*PendingSync, error) {
	query := `
	SELECT id, op, payload, enqueued_at
	FROM pending_sync
	ORDER BY rowid ASC`

	return QueryMultiple(ctx, r.db, query, ScanPendingSyncs, "pending sync entries")
}

// DeletePendingSync removes a queued mutation by ID
func (r *SQLiteRepository) DeletePendingSync(ctx context.Context, id string) error {
	return ExecuteWithRowsAffected(ctx, r.db, `DELETE FROM pending_sync WHERE id = ?`, "pending sync entry", id, id)
}

// CountPendingSync returns the number of queued mutations
func (r *SQLiteRepository) CountPendingSync(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_sync`).Scan(&count)
	if err != nil {
		return 0, HandleDatabaseError("count pending sync entries", err)
	}
	return count, nil
}

// GetSetting retrieves a settings value by key
func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", errors.NewNotFoundError("setting", key)
		}
		return "", HandleDatabaseError("get setting", err)
	}
	return value, nil
}

// SetSetting stores a settings value, replacing any existing value for the key
func (r *SQLiteRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO settings (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	return Execute(ctx, r.db, query, key, value)
}
