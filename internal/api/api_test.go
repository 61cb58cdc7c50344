package api

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ojt-tracker/internal/config"
	"ojt-tracker/internal/domain"
	"ojt-tracker/internal/errors"
	"ojt-tracker/internal/repository/sqlite"
	"ojt-tracker/internal/syncq"
	"ojt-tracker/internal/validation"
)

// fakeRemote records remote calls and optionally fails everything.
type fakeRemote struct {
	mu      sync.Mutex
	inserts int
	updates int
	deletes int
	failAll bool
}

func (r *fakeRemote) Insert(ctx context.Context, table string, payload []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return "", errors.NewTransportError("insert "+table, nil)
	}
	r.inserts++
	return "remote-id", nil
}

func (r *fakeRemote) Update(ctx context.Context, table, id string, patch []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errors.NewTransportError("update "+table, nil)
	}
	r.updates++
	return nil
}

func (r *fakeRemote) Delete(ctx context.Context, table, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errors.NewTransportError("delete "+table, nil)
	}
	r.deletes++
	return nil
}

type fixture struct {
	api     *TrackerAPI
	repo    *sqlite.SQLiteRepository
	store   *fakeRemote
	monitor *syncq.Monitor
	queue   *syncq.Queue
	clock   *time.Time
}

func setup(t *testing.T, online bool) *fixture {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "ojt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	store := &fakeRemote{}
	monitor := syncq.NewMonitor(online)
	queue := syncq.NewQueue(repo, store, monitor)
	t.Cleanup(queue.Close)

	cfg := config.NewConfig()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	trackerAPI := New(repo, store, queue, monitor, cfg).WithClock(func() time.Time { return now })

	return &fixture{
		api:     trackerAPI,
		repo:    repo,
		store:   store,
		monitor: monitor,
		queue:   queue,
		clock:   &now,
	}
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func TestClockInAndOut(t *testing.T) {
	f := setup(t, false)
	ctx := context.Background()

	session, err := f.api.ClockIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", session.Date)
	assert.Equal(t, domain.StatusOngoing, session.Status)
	assert.True(t, session.IsOpen())

	// A second clock-in is rejected while a session is open.
	_, err = f.api.ClockIn(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	f.advance(8 * time.Hour)

	closed, err := f.api.ClockOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, closed.Status)
	assert.Equal(t, 8.0, closed.TotalHours)
	assert.False(t, closed.IsOpen())

	_, err = f.api.OpenSession(ctx)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestClockInAutoClosesStaleSession(t *testing.T) {
	f := setup(t, false)
	ctx := context.Background()

	stale, err := f.api.ClockIn(ctx)
	require.NoError(t, err)

	// Forgot to clock out; next clock-in happens the following morning.
	f.advance(24 * time.Hour)

	fresh, err := f.api.ClockIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", fresh.Date)

	sessions, err := f.api.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	for _, session := range sessions {
		if session.ID != stale.ID {
			continue
		}
		assert.Equal(t, domain.StatusAutoClosed, session.Status)
		require.NotNil(t, session.TimeOut)
		assert.Equal(t, "2026-03-14", session.TimeOut.Format(domain.DateFormat))
		assert.Equal(t, 15.0, session.TotalHours) // 09:00:00 to 23:59:59, rounded
	}
}

func TestClockOutWithoutOpenSession(t *testing.T) {
	f := setup(t, false)

	_, err := f.api.ClockOut(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestBreakLifecycle(t *testing.T) {
	f := setup(t, false)
	ctx := context.Background()

	_, err := f.api.ClockIn(ctx)
	require.NoError(t, err)

	// No break open yet.
	_, err = f.api.EndBreak(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	f.advance(3 * time.Hour)
	session, err := f.api.StartBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOnBreak, session.Status)

	// Starting a second break while one is open is rejected.
	_, err = f.api.StartBreak(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	f.advance(30 * time.Minute)
	session, err = f.api.EndBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOngoing, session.Status)
	require.Len(t, session.Breaks, 1)
	assert.True(t, session.Breaks[0].IsComplete())

	f.advance(270 * time.Minute) // out at 17:30 after a 30m break

	closed, err := f.api.ClockOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8.0, closed.TotalHours)
}

func TestClockOutEndsOpenBreak(t *testing.T) {
	f := setup(t, false)
	ctx := context.Background()

	_, err := f.api.ClockIn(ctx)
	require.NoError(t, err)

	f.advance(4 * time.Hour)
	_, err = f.api.StartBreak(ctx)
	require.NoError(t, err)

	f.advance(30 * time.Minute)
	closed, err := f.api.ClockOut(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, closed.Status)
	require.Len(t, closed.Breaks, 1)
	require.True(t, closed.Breaks[0].IsComplete())
	assert.Equal(t, 4.0, closed.TotalHours)
}

func TestAddManualEntry(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()

	timeIn := time.Date(2026, 3, 13, 9, 0, 0, 0, time.Local)
	timeOut := timeIn.Add(8 * time.Hour)
	breakStart := timeIn.Add(3 * time.Hour)
	breakEnd := breakStart.Add(time.Hour)

	session, err := f.api.AddManualEntry(ctx, "2026-03-13", &timeIn, &timeOut, []domain.BreakInterval{
		{Start: breakStart, End: &breakEnd},
	})
	require.NoError(t, err)
	assert.Equal(t, 7.0, session.TotalHours)
	assert.Equal(t, domain.StatusCompleted, session.Status)

	// Online, so the insert went out directly and nothing is queued.
	assert.Equal(t, 1, f.store.inserts)
	status, err := f.api.SyncStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.PendingCount)

	sessions, err := f.api.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, session.ID, sessions[0].ID)
}

func TestAddManualEntryValidationFailure(t *testing.T) {
	f := setup(t, true)

	timeIn := time.Date(2026, 3, 13, 9, 0, 0, 0, time.Local)
	timeOut := timeIn.Add(10 * time.Minute)

	_, err := f.api.AddManualEntry(context.Background(), "2026-03-13", &timeIn, &timeOut, nil)
	require.Error(t, err)

	validationErr, ok := err.(*validation.ValidationError)
	require.True(t, ok)
	fieldErrors := validationErr.GetFieldErrors("time_out")
	require.NotEmpty(t, fieldErrors)
	assert.Equal(t, "Work time must be at least 15 minutes", fieldErrors[0].Message)

	// Nothing was stored or replicated.
	sessions, listErr := f.api.ListSessions(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, sessions)
	assert.Equal(t, 0, f.store.inserts)
}

func TestOfflineMutationsAreQueued(t *testing.T) {
	f := setup(t, false)
	ctx := context.Background()

	session, err := f.api.ClockIn(ctx)
	require.NoError(t, err)

	f.advance(time.Hour)
	_, err = f.api.ClockOut(ctx)
	require.NoError(t, err)

	require.NoError(t, f.api.DeleteSession(ctx, session.ID))

	status, err := f.api.SyncStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, status.PendingCount) // create, update, delete
	assert.False(t, status.Online)
	assert.Equal(t, 0, f.store.inserts+f.store.updates+f.store.deletes)

	require.NoError(t, f.api.Sync(ctx))

	status, err = f.api.SyncStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.PendingCount)
	assert.Equal(t, 1, f.store.inserts)
	assert.Equal(t, 1, f.store.updates)
	assert.Equal(t, 1, f.store.deletes)
}

func TestDirectWriteFailureFallsBackToQueue(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()

	f.store.failAll = true

	_, err := f.api.ClockIn(ctx)
	require.NoError(t, err)

	// The change is queued and the monitor flipped offline.
	status, err := f.api.SyncStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.PendingCount)
	assert.False(t, status.Online)

	// Reconnect drains the queue once the remote recovers.
	f.store.mu.Lock()
	f.store.failAll = false
	f.store.mu.Unlock()
	f.api.SetOnline(true)

	require.Eventually(t, func() bool {
		s, err := f.api.SyncStatus(ctx)
		return err == nil && s.PendingCount == 0
	}, time.Second, time.Millisecond)
}

func TestPreviewHours(t *testing.T) {
	f := setup(t, false)

	timeIn := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	timeOut := timeIn.Add(8 * time.Hour)

	assert.Equal(t, 8.0, f.api.PreviewHours(timeIn, &timeOut, nil))
	assert.Equal(t, 0.0, f.api.PreviewHours(timeIn, nil, nil))
}

func TestSearchSessions(t *testing.T) {
	f := setup(t, false)
	ctx := context.Background()

	_, err := f.api.ClockIn(ctx)
	require.NoError(t, err)

	date := "2026-03-14"
	matches, err := f.api.SearchSessions(ctx, sqlite.SearchOptions{Date: &date})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	other := "2026-03-15"
	matches, err = f.api.SearchSessions(ctx, sqlite.SearchOptions{Date: &other})
	require.NoError(t, err)
	assert.Empty(t, matches)
}
