package cli

import (
	"context"
	"fmt"

	"ojt-tracker/internal/timecalc"
)

// ListCommand handles the list command
type ListCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHdl: NewErrorHandler()}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	sessions, err := c.app.api.ListSessions(ctx)
	if err != nil {
		return c.errorHdl.Handle("list sessions", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(c.app.out, "No sessions recorded")
		return nil
	}

	for _, session := range sessions {
		out := "-"
		if session.TimeOut != nil {
			out = session.TimeOut.Format("15:04")
		}
		fmt.Fprintf(c.app.out, "%s  %s  %s to %s  %s hours  (%d breaks)  %s\n",
			session.ID,
			session.Date,
			session.TimeIn.Format("15:04"),
			out,
			timecalc.FormatHours(session.TotalHours),
			len(session.Breaks),
			session.Status,
		)
	}
	return nil
}
