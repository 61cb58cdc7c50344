package cli

import (
	"context"
	"fmt"

	"ojt-tracker/internal/timecalc"
)

// StatusCommand handles the status command
type StatusCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app, errorHdl: NewErrorHandler()}
}

// Execute runs the status command: the open session with a live hours
// preview, plus the sync queue state.
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	session, err := c.app.api.OpenSession(ctx)
	switch {
	case err == nil:
		c.app.printSession(session)
		now := timeNow()
		live := c.app.api.PreviewHours(session.TimeIn, &now, session.Breaks)
		fmt.Fprintf(c.app.out, "  So far:   %s hours\n", timecalc.FormatHours(live))
	case c.errorHdl.IsNotFoundError(err):
		fmt.Fprintln(c.app.out, "Not clocked in")
	default:
		return c.errorHdl.Handle("show status", err)
	}

	status, err := c.app.api.SyncStatus(ctx)
	if err != nil {
		return c.errorHdl.Handle("show status", err)
	}

	connectivity := "offline"
	if status.Online {
		connectivity = "online"
	}
	fmt.Fprintf(c.app.out, "Sync: %d pending, %s\n", status.PendingCount, connectivity)
	if status.Draining {
		fmt.Fprintln(c.app.out, "Sync in progress")
	}
	return nil
}
