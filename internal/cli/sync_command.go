package cli

import (
	"context"
	"fmt"
)

// SyncCommand handles the sync command
type SyncCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewSyncCommand creates a new sync command handler
func NewSyncCommand(app *App) *SyncCommand {
	return &SyncCommand{app: app, errorHdl: NewErrorHandler()}
}

// Execute runs a drain pass and reports how many entries are left
func (c *SyncCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.api.Sync(ctx); err != nil {
		return c.errorHdl.Handle("sync", err)
	}

	status, err := c.app.api.SyncStatus(ctx)
	if err != nil {
		return c.errorHdl.Handle("sync", err)
	}

	if status.PendingCount == 0 {
		fmt.Fprintln(c.app.out, "All changes synced")
	} else {
		fmt.Fprintf(c.app.out, "%d changes still pending\n", status.PendingCount)
	}
	return nil
}
