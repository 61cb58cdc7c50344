package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"ojt-tracker/internal/api"
	"ojt-tracker/internal/config"
	"ojt-tracker/internal/domain"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// API is the surface of the tracker the CLI drives. Satisfied by
// api.TrackerAPI and mocked in tests.
type API interface {
	ClockIn(ctx context.Context) (*domain.WorkSession, error)
	ClockOut(ctx context.Context) (*domain.WorkSession, error)
	StartBreak(ctx context.Context) (*domain.WorkSession, error)
	EndBreak(ctx context.Context) (*domain.WorkSession, error)
	AddManualEntry(ctx context.Context, date string, timeIn, timeOut *time.Time, breaks []domain.BreakInterval) (*domain.WorkSession, error)
	PreviewHours(timeIn time.Time, timeOut *time.Time, breaks []domain.BreakInterval) float64
	OpenSession(ctx context.Context) (*domain.WorkSession, error)
	ListSessions(ctx context.Context) ([]domain.WorkSession, error)
	DeleteSession(ctx context.Context, id string) error
	Sync(ctx context.Context) error
	SyncStatus(ctx context.Context) (api.SyncStatus, error)
}

// App bundles the dependencies the command handlers share.
type App struct {
	api    API
	config *config.Config
	out    io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance API, cfg *config.Config) *App {
	return &App{
		api:    apiInstance,
		config: cfg,
		out:    os.Stdout,
	}
}

// WithOutput redirects command output. Used by tests.
func (a *App) WithOutput(out io.Writer) *App {
	a.out = out
	return a
}

// GetDatabasePath returns the path to the SQLite database file, creating
// the containing directory if needed.
func GetDatabasePath(cfg *config.Config) (string, error) {
	if dbPath := os.Getenv("OJT_DB"); dbPath != "" {
		return dbPath, nil
	}

	if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}

	return cfg.GetDatabasePath(), nil
}

func (a *App) printSession(session *domain.WorkSession) {
	format := a.config.Time.DisplayFormat

	fmt.Fprintf(a.out, "Session %s (%s)\n", session.ID, session.Status)
	fmt.Fprintf(a.out, "  Date:     %s\n", session.Date)
	fmt.Fprintf(a.out, "  Time in:  %s\n", session.TimeIn.Format(format))
	if session.TimeOut != nil {
		fmt.Fprintf(a.out, "  Time out: %s\n", session.TimeOut.Format(format))
	}
	for i, b := range session.Breaks {
		end := "ongoing"
		if b.End != nil {
			end = b.End.Format(format)
		}
		fmt.Fprintf(a.out, "  Break %d:  %s to %s\n", i+1, b.Start.Format(format), end)
	}
}
