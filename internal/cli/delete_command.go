package cli

import (
	"context"
	"fmt"

	"ojt-tracker/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHdl: NewErrorHandler()}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("usage: ojt delete <session-id>", nil)
	}

	if err := c.app.api.DeleteSession(ctx, args[0]); err != nil {
		return c.errorHdl.Handle("delete session", err)
	}

	fmt.Fprintf(c.app.out, "Deleted session %s\n", args[0])
	return nil
}
