package validation

import (
	"fmt"
	"time"

	"ojt-tracker/internal/config"
	"ojt-tracker/internal/domain"
	"ojt-tracker/internal/timecalc"
)

// SessionValidator validates manual work session entries against the
// business rules: session bounds, break containment, break duration bounds,
// pairwise break overlap, and the minimum net work time.
//
// Validation accumulates every applicable error rather than stopping at the
// first one, keyed by field ("date", "time_in", "time_out",
// "break_<index>_start", "break_<index>_end") so the UI can decorate
// individual fields. It is purely deterministic and has no side effects.
type SessionValidator struct {
	validator *Validator
}

// NewSessionValidator creates a new session validator using default rules
func NewSessionValidator() *SessionValidator {
	return &SessionValidator{
		validator: NewValidator(),
	}
}

// NewSessionValidatorWithConfig creates a new session validator with configuration
func NewSessionValidatorWithConfig(cfg *config.Config) *SessionValidator {
	return &SessionValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// BreakStartField returns the error-map key for break i's start field.
func BreakStartField(i int) string {
	return fmt.Sprintf("break_%d_start", i)
}

// BreakEndField returns the error-map key for break i's end field.
func BreakEndField(i int) string {
	return fmt.Sprintf("break_%d_end", i)
}

// ValidateSession validates a session's date, clock times and breaks. On
// success it returns the validated session with the derived work duration;
// on failure it returns the accumulated field errors.
func (sv *SessionValidator) ValidateSession(date string, timeIn, timeOut *time.Time, breaks []domain.BreakInterval) (*timecalc.ValidatedSession, *ValidationError) {
	validationError := NewValidationError()

	// Step 1: required fields, each missing field reports its own error.
	if date == "" {
		validationError.AddRequiredError("date")
	}
	hasTimeIn := timeIn != nil && !timeIn.IsZero()
	if !hasTimeIn {
		validationError.AddRequiredError("time_in")
	}
	hasTimeOut := timeOut != nil && !timeOut.IsZero()
	if !hasTimeOut {
		validationError.AddRequiredError("time_out")
	}

	// Step 2: time out strictly after time in.
	boundsKnown := hasTimeIn && hasTimeOut
	if boundsKnown && !sv.validator.IsValidTimeRange(*timeIn, *timeOut) {
		validationError.AddInvalidRangeError("time_out", *timeOut, "Time out must be after time in")
		boundsKnown = false
	}

	// Steps 3 and 4: per-break checks. A break missing either endpoint
	// reports required errors and is skipped for the remaining checks.
	for i, b := range breaks {
		if b.Start.IsZero() {
			validationError.AddRequiredError(BreakStartField(i))
		}
		if b.End == nil || b.End.IsZero() {
			validationError.AddRequiredError(BreakEndField(i))
		}
		if !b.IsComplete() {
			continue
		}

		if hasTimeIn && b.Start.Before(*timeIn) {
			validationError.AddInvalidRangeError(BreakStartField(i), b.Start, "Break cannot start before time in")
		}
		if hasTimeOut && b.End.After(*timeOut) {
			validationError.AddInvalidRangeError(BreakEndField(i), *b.End, "Break cannot end after time out")
		}
		if !b.End.After(b.Start) {
			validationError.AddInvalidRangeError(BreakEndField(i), *b.End, "Break end must be after break start")
		} else if !sv.validator.IsValidBreakDuration(b.End.Sub(b.Start)) {
			message := fmt.Sprintf("Break must be between %d and %d minutes",
				sv.validator.BreakMinMinutes(), sv.validator.BreakMaxMinutes())
			validationError.AddInvalidValueError(BreakEndField(i), *b.End, message)
		}
	}

	// Step 5: minimum net work time, reported against time out.
	if boundsKnown {
		workSeconds := timecalc.WorkSeconds(*timeIn, *timeOut, breaks)
		if workSeconds < int64(sv.validator.MinWorkMinutes())*60 {
			message := fmt.Sprintf("Work time must be at least %d minutes", sv.validator.MinWorkMinutes())
			validationError.AddInvalidValueError("time_out", *timeOut, message)
		}
	}

	// Step 6: pairwise overlap, reported against the later break's start.
	for j := 1; j < len(breaks); j++ {
		for i := 0; i < j; i++ {
			if breaks[i].Overlaps(breaks[j]) {
				message := fmt.Sprintf("Break overlaps with break %d", i+1)
				validationError.AddOverlapError(BreakStartField(j), breaks[j].Start, message)
				break
			}
		}
	}

	if validationError.HasErrors() {
		return nil, validationError
	}

	workSeconds := timecalc.WorkSeconds(*timeIn, *timeOut, breaks)
	return &timecalc.ValidatedSession{
		Date:        date,
		TimeIn:      *timeIn,
		TimeOut:     *timeOut,
		Breaks:      breaks,
		WorkSeconds: workSeconds,
		TotalHours:  timecalc.RoundHours(workSeconds),
	}, nil
}
