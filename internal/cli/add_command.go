package cli

import (
	"context"
	"fmt"
	"strings"

	"ojt-tracker/internal/domain"
	"ojt-tracker/internal/errors"
	"ojt-tracker/internal/timecalc"
)

// AddCommand handles manual entry of a complete session
type AddCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, errorHdl: NewErrorHandler()}
}

// Execute runs the add command. Expected shape:
//
//	ojt add 2026-03-13 09:00 17:00 --break 12:00-13:00 --break 15:00-15:15
//
// breakSpecs carries the values of the repeated --break flag.
func (c *AddCommand) Execute(ctx context.Context, args []string, breakSpecs []string) error {
	if len(args) != 3 {
		return errors.NewValidationError("usage: ojt add <date> <time-in> <time-out> [--break HH:MM-HH:MM]...", nil)
	}
	date := args[0]

	timeIn, err := timecalc.CombineDateTime(date, args[1])
	if err != nil {
		return c.errorHdl.Handle("add entry", errors.NewValidationError(err.Error(), err))
	}
	timeOut, err := timecalc.CombineDateTime(date, args[2])
	if err != nil {
		return c.errorHdl.Handle("add entry", errors.NewValidationError(err.Error(), err))
	}

	breaks, err := parseBreakSpecs(date, breakSpecs)
	if err != nil {
		return c.errorHdl.Handle("add entry", err)
	}

	preview := c.app.api.PreviewHours(timeIn, &timeOut, breaks)
	fmt.Fprintf(c.app.out, "Computed total: %s hours\n", timecalc.FormatHours(preview))

	session, err := c.app.api.AddManualEntry(ctx, date, &timeIn, &timeOut, breaks)
	if err != nil {
		return c.errorHdl.Handle("add entry", err)
	}

	fmt.Fprintf(c.app.out, "Added session %s (%s hours)\n", session.ID, timecalc.FormatHours(session.TotalHours))
	return nil
}

// parseBreakSpecs converts "HH:MM-HH:MM" specs into break intervals on date.
func parseBreakSpecs(date string, specs []string) ([]domain.BreakInterval, error) {
	breaks := make([]domain.BreakInterval, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, "-", 2)
		if len(parts) != 2 {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid break %q, expected HH:MM-HH:MM", spec), nil)
		}

		start, err := timecalc.CombineDateTime(date, parts[0])
		if err != nil {
			return nil, errors.NewValidationError(err.Error(), err)
		}
		end, err := timecalc.CombineDateTime(date, parts[1])
		if err != nil {
			return nil, errors.NewValidationError(err.Error(), err)
		}

		breaks = append(breaks, domain.BreakInterval{Start: start, End: &end})
	}
	if len(breaks) == 0 {
		return nil, nil
	}
	return breaks, nil
}
