// Package api provides the high-level operations the CLI (or any other
// frontend) drives the tracker with. Every operation persists locally
// first; replication to the remote store happens directly when online
// and through the durable sync queue when not.
package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"ojt-tracker/internal/config"
	"ojt-tracker/internal/domain"
	"ojt-tracker/internal/errors"
	"ojt-tracker/internal/logging"
	"ojt-tracker/internal/remote"
	"ojt-tracker/internal/repository/sqlite"
	"ojt-tracker/internal/syncq"
	"ojt-tracker/internal/timecalc"
	"ojt-tracker/internal/validation"
)

// SyncStatus is a snapshot of the replication state.
type SyncStatus struct {
	PendingCount int
	Draining     bool
	Online       bool
}

// TrackerAPI is the facade over storage, validation and sync.
type TrackerAPI struct {
	repo      sqlite.Repository
	store     remote.Store
	queue     *syncq.Queue
	monitor   *syncq.Monitor
	validator *validation.SessionValidator
	mapper    *domain.Mapper
	config    *config.Config

	now   func() time.Time
	newID func() string
}

// New creates a TrackerAPI wired to the given collaborators.
func New(repo sqlite.Repository, store remote.Store, queue *syncq.Queue, monitor *syncq.Monitor, cfg *config.Config) *TrackerAPI {
	return &TrackerAPI{
		repo:      repo,
		store:     store,
		queue:     queue,
		monitor:   monitor,
		validator: validation.NewSessionValidatorWithConfig(cfg),
		mapper:    domain.NewMapper(),
		config:    cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// WithClock overrides the time source. Used by tests.
func (a *TrackerAPI) WithClock(now func() time.Time) *TrackerAPI {
	a.now = now
	return a
}

// ClockIn opens a new work session. Fails if a session from the same day is
// already open; a session left open from an earlier day is auto-closed at the
// end of its own day first.
func (a *TrackerAPI) ClockIn(ctx context.Context) (*domain.WorkSession, error) {
	now := a.now()

	if open, err := a.openSession(ctx); err == nil {
		if open.Date == now.Format(domain.DateFormat) {
			return nil, errors.NewValidationError("a session is already open, clock out first", nil)
		}
		if err := a.autoClose(ctx, open); err != nil {
			return nil, err
		}
	} else if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	session := domain.NewWorkSession(a.newID(), now)

	row := a.mapper.WorkSession.ToDatabase(session)
	if err := a.repo.CreateWorkSession(ctx, &row); err != nil {
		return nil, err
	}

	if err := a.replicate(ctx, domain.SyncOpCreate, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ClockOut closes the open session at the current time. An open break is
// ended at the same instant before the session is closed.
func (a *TrackerAPI) ClockOut(ctx context.Context) (*domain.WorkSession, error) {
	session, err := a.openSession(ctx)
	if err != nil {
		return nil, err
	}

	now := a.now()
	if session.OnBreak() {
		*session = session.EndBreak(now)
	}
	*session = session.Close(now, domain.StatusCompleted)
	session.TotalHours = timecalc.ComputeLiveHours(session.TimeIn, session.TimeOut, session.Breaks)

	return a.saveAndReplicate(ctx, session)
}

// StartBreak opens a break on the current session.
func (a *TrackerAPI) StartBreak(ctx context.Context) (*domain.WorkSession, error) {
	session, err := a.openSession(ctx)
	if err != nil {
		return nil, err
	}
	if session.OnBreak() {
		return nil, errors.NewValidationError("a break is already in progress", nil)
	}

	*session = session.StartBreak(a.now())
	return a.saveAndReplicate(ctx, session)
}

// EndBreak closes the open break on the current session.
func (a *TrackerAPI) EndBreak(ctx context.Context) (*domain.WorkSession, error) {
	session, err := a.openSession(ctx)
	if err != nil {
		return nil, err
	}
	if !session.OnBreak() {
		return nil, errors.NewValidationError("no break is in progress", nil)
	}

	*session = session.EndBreak(a.now())
	return a.saveAndReplicate(ctx, session)
}

// AddManualEntry validates and stores a complete session entered by hand.
// On validation failure the accumulated field errors are returned.
func (a *TrackerAPI) AddManualEntry(ctx context.Context, date string, timeIn, timeOut *time.Time, breaks []domain.BreakInterval) (*domain.WorkSession, error) {
	validated, validationErr := a.validator.ValidateSession(date, timeIn, timeOut, breaks)
	if validationErr != nil {
		return nil, validationErr
	}

	session := domain.WorkSession{
		ID:         a.newID(),
		Date:       validated.Date,
		TimeIn:     validated.TimeIn,
		TimeOut:    &validated.TimeOut,
		Breaks:     validated.Breaks,
		Status:     domain.StatusCompleted,
		TotalHours: validated.TotalHours,
	}

	row := a.mapper.WorkSession.ToDatabase(session)
	if err := a.repo.CreateWorkSession(ctx, &row); err != nil {
		return nil, err
	}

	if err := a.replicate(ctx, domain.SyncOpCreate, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// PreviewHours computes the tolerant live preview of total hours for a
// partially entered session. It never fails; incomplete input yields 0.00.
func (a *TrackerAPI) PreviewHours(timeIn time.Time, timeOut *time.Time, breaks []domain.BreakInterval) float64 {
	return timecalc.ComputeLiveHours(timeIn, timeOut, breaks)
}

// OpenSession returns the currently open session, or a not-found error.
func (a *TrackerAPI) OpenSession(ctx context.Context) (*domain.WorkSession, error) {
	return a.openSession(ctx)
}

// ListSessions returns all stored sessions ordered by clock-in time.
func (a *TrackerAPI) ListSessions(ctx context.Context) ([]domain.WorkSession, error) {
	rows, err := a.repo.ListWorkSessions(ctx)
	if err != nil {
		return nil, err
	}
	return a.mapper.WorkSession.FromDatabaseSlice(rows), nil
}

// SearchSessions returns sessions matching the given filters.
func (a *TrackerAPI) SearchSessions(ctx context.Context, opts sqlite.SearchOptions) ([]domain.WorkSession, error) {
	rows, err := a.repo.SearchWorkSessions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return a.mapper.WorkSession.FromDatabaseSlice(rows), nil
}

// DeleteSession removes a session locally and replicates the deletion.
func (a *TrackerAPI) DeleteSession(ctx context.Context, id string) error {
	if err := a.repo.DeleteWorkSession(ctx, id); err != nil {
		return err
	}

	if a.monitor.Online() {
		err := a.store.Delete(ctx, a.config.Remote.SessionsTable, id)
		if err == nil {
			return nil
		}
		logging.Debugf("api: direct delete failed, queueing: %v", err)
		a.monitor.SetOnline(false)
	}
	return a.queue.Enqueue(ctx, domain.SyncOpDelete, syncq.Mutation{
		Table: a.config.Remote.SessionsTable,
		ID:    id,
	})
}

// Sync runs a drain pass against the remote store.
func (a *TrackerAPI) Sync(ctx context.Context) error {
	return a.queue.Drain(ctx)
}

// SyncStatus reports the queue depth and connectivity state.
func (a *TrackerAPI) SyncStatus(ctx context.Context) (SyncStatus, error) {
	pending, err := a.queue.Pending(ctx)
	if err != nil {
		return SyncStatus{}, err
	}
	return SyncStatus{
		PendingCount: pending,
		Draining:     a.queue.Draining(),
		Online:       a.monitor.Online(),
	}, nil
}

// SetOnline feeds a connectivity change into the monitor. An offline to
// online transition kicks off a drain automatically.
func (a *TrackerAPI) SetOnline(online bool) {
	a.monitor.SetOnline(online)
}

// autoClose closes a session left open from a previous day at 23:59:59 of
// its own calendar day.
func (a *TrackerAPI) autoClose(ctx context.Context, session *domain.WorkSession) error {
	day, err := time.ParseInLocation(domain.DateFormat, session.Date, time.Local)
	if err != nil {
		day = session.TimeIn
	}
	endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.Local)

	if session.OnBreak() {
		*session = session.EndBreak(endOfDay)
	}
	*session = session.Close(endOfDay, domain.StatusAutoClosed)
	session.TotalHours = timecalc.ComputeLiveHours(session.TimeIn, session.TimeOut, session.Breaks)

	logging.Debugf("api: auto-closed stale session %s from %s", session.ID, session.Date)
	_, err = a.saveAndReplicate(ctx, session)
	return err
}

func (a *TrackerAPI) openSession(ctx context.Context) (*domain.WorkSession, error) {
	row, err := a.repo.GetOpenWorkSession(ctx)
	if err != nil {
		return nil, err
	}
	session := a.mapper.WorkSession.FromDatabase(*row)
	return &session, nil
}

// saveAndReplicate updates the local row and replicates it as an update.
func (a *TrackerAPI) saveAndReplicate(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error) {
	row := a.mapper.WorkSession.ToDatabase(*session)
	if err := a.repo.UpdateWorkSession(ctx, &row); err != nil {
		return nil, err
	}
	if err := a.replicate(ctx, domain.SyncOpUpdate, *session); err != nil {
		return nil, err
	}
	return session, nil
}

// replicate pushes a session mutation to the remote store. When online the
// write goes out directly; a transport failure flips the monitor offline
// and falls back to the queue, so the change is never lost.
func (a *TrackerAPI) replicate(ctx context.Context, op domain.SyncOp, session domain.WorkSession) error {
	payload, err := json.Marshal(remotePayload(session))
	if err != nil {
		return errors.NewPersistenceError("encode session payload", err)
	}

	if a.monitor.Online() {
		err := a.directWrite(ctx, op, session.ID, payload)
		if err == nil {
			return nil
		}
		logging.Debugf("api: direct %s failed, queueing: %v", op, err)
		a.monitor.SetOnline(false)
	}

	return a.queue.Enqueue(ctx, op, syncq.Mutation{
		Table: a.config.Remote.SessionsTable,
		ID:    session.ID,
		Data:  payload,
	})
}

func (a *TrackerAPI) directWrite(ctx context.Context, op domain.SyncOp, id string, payload []byte) error {
	table := a.config.Remote.SessionsTable
	switch op {
	case domain.SyncOpCreate:
		_, err := a.store.Insert(ctx, table, payload)
		return err
	case domain.SyncOpUpdate:
		return a.store.Update(ctx, table, id, payload)
	case domain.SyncOpDelete:
		return a.store.Delete(ctx, table, id)
	default:
		return errors.NewValidationError("unknown sync operation: "+string(op), nil)
	}
}

// remoteBreak is the wire shape of one break inside a session payload.
type remoteBreak struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// remoteSession is the wire shape of a session payload.
type remoteSession struct {
	ID         string        `json:"id"`
	Date       string        `json:"date"`
	TimeIn     time.Time     `json:"time_in"`
	TimeOut    *time.Time    `json:"time_out,omitempty"`
	Breaks     []remoteBreak `json:"breaks"`
	Status     string        `json:"status"`
	TotalHours float64       `json:"total_hours"`
}

func remotePayload(session domain.WorkSession) remoteSession {
	breaks := make([]remoteBreak, len(session.Breaks))
	for i, b := range session.Breaks {
		breaks[i] = remoteBreak{Start: b.Start, End: b.End}
	}
	return remoteSession{
		ID:         session.ID,
		Date:       session.Date,
		TimeIn:     session.TimeIn,
		TimeOut:    session.TimeOut,
		Breaks:     breaks,
		Status:     string(session.Status),
		TotalHours: session.TotalHours,
	}
}
