package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ojt-tracker/internal/api"
	"ojt-tracker/internal/config"
	"ojt-tracker/internal/domain"
	"ojt-tracker/internal/errors"
	"ojt-tracker/internal/validation"
)

func setupApp(mock *mockAPI) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	app := NewApp(mock, config.NewConfig()).WithOutput(out)
	return app, out
}

func openSessionAt(h, m int) *domain.WorkSession {
	timeIn := time.Date(2026, 3, 14, h, m, 0, 0, time.Local)
	session := domain.NewWorkSession("s-1", timeIn)
	return &session
}

func TestInCommand(t *testing.T) {
	mock := &mockAPI{clockInResult: openSessionAt(9, 0)}
	app, out := setupApp(mock)

	err := NewInCommand(app).Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.clockInCalls)
	assert.Contains(t, out.String(), "Clocked in at 2026-03-14 09:00:00")
}

func TestInCommandAlreadyOpen(t *testing.T) {
	mock := &mockAPI{clockInErr: errors.NewValidationError("a session is already open, clock out first", nil)}
	app, _ := setupApp(mock)

	err := NewInCommand(app).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clock in")
	assert.Contains(t, err.Error(), "already open")
}

func TestOutCommand(t *testing.T) {
	session := openSessionAt(9, 0)
	timeOut := session.TimeIn.Add(8 * time.Hour)
	closed := session.Close(timeOut, domain.StatusCompleted)
	closed.TotalHours = 8.0

	mock := &mockAPI{clockOutResult: &closed}
	app, out := setupApp(mock)

	err := NewOutCommand(app).Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "total 8.00 hours")
}

func TestBreakCommands(t *testing.T) {
	session := openSessionAt(9, 0)
	onBreak := session.StartBreak(session.TimeIn.Add(3 * time.Hour))

	mock := &mockAPI{breakResult: &onBreak}
	app, out := setupApp(mock)

	require.NoError(t, NewBreakCommand(app).Start(context.Background()))
	assert.Contains(t, out.String(), "Break started at 2026-03-14 12:00:00")

	ended := onBreak.EndBreak(session.TimeIn.Add(210 * time.Minute))
	mock.breakResult = &ended
	out.Reset()

	require.NoError(t, NewBreakCommand(app).End(context.Background()))
	assert.Contains(t, out.String(), "Break ended at 2026-03-14 12:30:00")
}

func TestAddCommand(t *testing.T) {
	added := openSessionAt(9, 0)
	added.TotalHours = 7.0

	mock := &mockAPI{addResult: added}
	app, out := setupApp(mock)

	err := NewAddCommand(app).Execute(context.Background(),
		[]string{"2026-03-13", "09:00", "17:00"},
		[]string{"12:00-13:00"})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-13", mock.addedDate)
	require.Len(t, mock.addedBreaks, 1)
	assert.Contains(t, out.String(), "Computed total: 7.00 hours")
	assert.Contains(t, out.String(), "Added session s-1 (7.00 hours)")
}

func TestAddCommandBadBreakSpec(t *testing.T) {
	mock := &mockAPI{}
	app, _ := setupApp(mock)

	err := NewAddCommand(app).Execute(context.Background(),
		[]string{"2026-03-13", "09:00", "17:00"},
		[]string{"lunch"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected HH:MM-HH:MM")
}

func TestAddCommandValidationErrorListsFields(t *testing.T) {
	validationErr := validation.NewValidationError()
	validationErr.AddInvalidValueError("time_out", nil, "Work time must be at least 15 minutes")

	mock := &mockAPI{addErr: validationErr}
	app, _ := setupApp(mock)

	err := NewAddCommand(app).Execute(context.Background(),
		[]string{"2026-03-13", "09:00", "09:10"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time_out: Work time must be at least 15 minutes")
}

func TestListCommand(t *testing.T) {
	session := openSessionAt(9, 0)
	mock := &mockAPI{listResult: []domain.WorkSession{*session}}
	app, out := setupApp(mock)

	require.NoError(t, NewListCommand(app).Execute(context.Background(), nil))
	assert.Contains(t, out.String(), "s-1")
	assert.Contains(t, out.String(), "2026-03-14")
	assert.Contains(t, out.String(), "ongoing")
}

func TestListCommandEmpty(t *testing.T) {
	mock := &mockAPI{}
	app, out := setupApp(mock)

	require.NoError(t, NewListCommand(app).Execute(context.Background(), nil))
	assert.Contains(t, out.String(), "No sessions recorded")
}

func TestStatusCommandWithOpenSession(t *testing.T) {
	originalNow := timeNow
	defer func() { timeNow = originalNow }()
	timeNow = func() time.Time {
		return time.Date(2026, 3, 14, 13, 0, 0, 0, time.Local)
	}

	mock := &mockAPI{
		openResult: openSessionAt(9, 0),
		syncStatus: api.SyncStatus{PendingCount: 2, Online: false},
	}
	app, out := setupApp(mock)

	require.NoError(t, NewStatusCommand(app).Execute(context.Background(), nil))
	assert.Contains(t, out.String(), "Session s-1 (ongoing)")
	assert.Contains(t, out.String(), "So far:   4.00 hours")
	assert.Contains(t, out.String(), "Sync: 2 pending, offline")
}

func TestStatusCommandNotClockedIn(t *testing.T) {
	mock := &mockAPI{
		openErr:    errors.NewNotFoundError("open work session", "current"),
		syncStatus: api.SyncStatus{Online: true},
	}
	app, out := setupApp(mock)

	require.NoError(t, NewStatusCommand(app).Execute(context.Background(), nil))
	assert.Contains(t, out.String(), "Not clocked in")
	assert.Contains(t, out.String(), "Sync: 0 pending, online")
}

func TestSyncCommand(t *testing.T) {
	mock := &mockAPI{syncStatus: api.SyncStatus{PendingCount: 0}}
	app, out := setupApp(mock)

	require.NoError(t, NewSyncCommand(app).Execute(context.Background(), nil))
	assert.Equal(t, 1, mock.syncRuns)
	assert.Contains(t, out.String(), "All changes synced")
}

func TestSyncCommandLeftovers(t *testing.T) {
	mock := &mockAPI{syncStatus: api.SyncStatus{PendingCount: 3}}
	app, out := setupApp(mock)

	require.NoError(t, NewSyncCommand(app).Execute(context.Background(), nil))
	assert.Contains(t, out.String(), "3 changes still pending")
}

func TestDeleteCommand(t *testing.T) {
	mock := &mockAPI{}
	app, out := setupApp(mock)

	require.NoError(t, NewDeleteCommand(app).Execute(context.Background(), []string{"s-1"}))
	assert.Equal(t, "s-1", mock.deletedID)
	assert.Contains(t, out.String(), "Deleted session s-1")

	err := NewDeleteCommand(app).Execute(context.Background(), nil)
	require.Error(t, err)
}

func TestRootCommandDispatch(t *testing.T) {
	mock := &mockAPI{clockInResult: openSessionAt(9, 0)}
	app, out := setupApp(mock)

	root := NewRootCommand(app, app.config)
	root.SetArgs([]string{"in"})

	require.NoError(t, root.Execute())
	assert.Equal(t, 1, mock.clockInCalls)
	assert.Contains(t, out.String(), "Clocked in")
}

func TestRootCommandFlagOverrides(t *testing.T) {
	mock := &mockAPI{syncStatus: api.SyncStatus{}}
	app, _ := setupApp(mock)

	root := NewRootCommand(app, app.config)
	root.SetArgs([]string{"sync", "--min-work-minutes", "30", "--remote-url", "https://example.test"})

	require.NoError(t, root.Execute())
	assert.Equal(t, 30, app.config.Validation.MinWorkMinutes)
	assert.Equal(t, "https://example.test", app.config.Remote.BaseURL)
}
