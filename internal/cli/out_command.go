package cli

import (
	"context"
	"fmt"

	"ojt-tracker/internal/timecalc"
)

// OutCommand handles the clock-out command
type OutCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewOutCommand creates a new clock-out command handler
func NewOutCommand(app *App) *OutCommand {
	return &OutCommand{app: app, errorHdl: NewErrorHandler()}
}

// Execute runs the clock-out command
func (c *OutCommand) Execute(ctx context.Context, args []string) error {
	session, err := c.app.api.ClockOut(ctx)
	if err != nil {
		return c.errorHdl.Handle("clock out", err)
	}

	fmt.Fprintf(c.app.out, "Clocked out at %s, total %s hours\n",
		session.TimeOut.Format(c.app.config.Time.DisplayFormat),
		timecalc.FormatHours(session.TotalHours))
	return nil
}
