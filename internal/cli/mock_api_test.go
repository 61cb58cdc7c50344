package cli

import (
	"context"
	"time"

	"ojt-tracker/internal/api"
	"ojt-tracker/internal/domain"
	"ojt-tracker/internal/timecalc"
)

// mockAPI is a hand-rolled test double for the API interface.
type mockAPI struct {
	clockInResult  *domain.WorkSession
	clockInErr     error
	clockOutResult *domain.WorkSession
	clockOutErr    error
	breakResult    *domain.WorkSession
	breakErr       error
	addResult      *domain.WorkSession
	addErr         error
	openResult     *domain.WorkSession
	openErr        error
	listResult     []domain.WorkSession
	listErr        error
	deleteErr      error
	syncErr        error
	syncStatus     api.SyncStatus
	syncStatusErr  error

	addedDate    string
	addedBreaks  []domain.BreakInterval
	deletedID    string
	syncRuns     int
	clockInCalls int
}

func (m *mockAPI) ClockIn(ctx context.Context) (*domain.WorkSession, error) {
	m.clockInCalls++
	return m.clockInResult, m.clockInErr
}

func (m *mockAPI) ClockOut(ctx context.Context) (*domain.WorkSession, error) {
	return m.clockOutResult, m.clockOutErr
}

func (m *mockAPI) StartBreak(ctx context.Context) (*domain.WorkSession, error) {
	return m.breakResult, m.breakErr
}

func (m *mockAPI) EndBreak(ctx context.Context) (*domain.WorkSession, error) {
	return m.breakResult, m.breakErr
}

func (m *mockAPI) AddManualEntry(ctx context.Context, date string, timeIn, timeOut *time.Time, breaks []domain.BreakInterval) (*domain.WorkSession, error) {
	m.addedDate = date
	m.addedBreaks = breaks
	return m.addResult, m.addErr
}

func (m *mockAPI) PreviewHours(timeIn time.Time, timeOut *time.Time, breaks []domain.BreakInterval) float64 {
	return timecalc.ComputeLiveHours(timeIn, timeOut, breaks)
}

func (m *mockAPI) OpenSession(ctx context.Context) (*domain.WorkSession, error) {
	return m.openResult, m.openErr
}

func (m *mockAPI) ListSessions(ctx context.Context) ([]domain.WorkSession, error) {
	return m.listResult, m.listErr
}

func (m *mockAPI) DeleteSession(ctx context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

func (m *mockAPI) Sync(ctx context.Context) error {
	m.syncRuns++
	return m.syncErr
}

func (m *mockAPI) SyncStatus(ctx context.Context) (api.SyncStatus, error) {
	return m.syncStatus, m.syncStatusErr
}
