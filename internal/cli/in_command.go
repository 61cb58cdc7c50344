package cli

import (
	"context"
	"fmt"
)

// InCommand handles the clock-in command
type InCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewInCommand creates a new clock-in command handler
func NewInCommand(app *App) *InCommand {
	return &InCommand{app: app, errorHdl: NewErrorHandler()}
}

// Execute runs the clock-in command
func (c *InCommand) Execute(ctx context.Context, args []string) error {
	session, err := c.app.api.ClockIn(ctx)
	if err != nil {
		return c.errorHdl.Handle("clock in", err)
	}

	fmt.Fprintf(c.app.out, "Clocked in at %s\n", session.TimeIn.Format(c.app.config.Time.DisplayFormat))
	return nil
}
