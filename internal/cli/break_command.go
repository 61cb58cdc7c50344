package cli

import (
	"context"
	"fmt"
)

// BreakCommand handles the break start and break end commands
type BreakCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewBreakCommand creates a new break command handler
func NewBreakCommand(app *App) *BreakCommand {
	return &BreakCommand{app: app, errorHdl: NewErrorHandler()}
}

// Start opens a break on the current session
func (c *BreakCommand) Start(ctx context.Context) error {
	session, err := c.app.api.StartBreak(ctx)
	if err != nil {
		return c.errorHdl.Handle("start break", err)
	}

	last := session.Breaks[len(session.Breaks)-1]
	fmt.Fprintf(c.app.out, "Break started at %s\n", last.Start.Format(c.app.config.Time.DisplayFormat))
	return nil
}

// End closes the open break on the current session
func (c *BreakCommand) End(ctx context.Context) error {
	session, err := c.app.api.EndBreak(ctx)
	if err != nil {
		return c.errorHdl.Handle("end break", err)
	}

	last := session.Breaks[len(session.Breaks)-1]
	fmt.Fprintf(c.app.out, "Break ended at %s\n", last.End.Format(c.app.config.Time.DisplayFormat))
	return nil
}
