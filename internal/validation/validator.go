package validation

import (
	"time"

	"ojt-tracker/internal/config"
)

// Validator provides common validation utilities for session times.
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using default rules
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsValidTimeRange checks if start time is strictly before end time
func (v *Validator) IsValidTimeRange(startTime, endTime time.Time) bool {
	return startTime.Before(endTime)
}

// IsWithinBounds checks if [start, end] lies inside [lowerBound, upperBound]
func (v *Validator) IsWithinBounds(start, end, lowerBound, upperBound time.Time) bool {
	return !start.Before(lowerBound) && !end.After(upperBound)
}

// IsValidBreakDuration checks if a break duration is within the configured
// bounds (1 to 120 minutes by default, inclusive on both ends)
func (v *Validator) IsValidBreakDuration(duration time.Duration) bool {
	min := time.Duration(v.BreakMinMinutes()) * time.Minute
	max := time.Duration(v.BreakMaxMinutes()) * time.Minute
	return duration >= min && duration <= max
}

// MinWorkMinutes returns the configured minimum net work time or default
func (v *Validator) MinWorkMinutes() int {
	if v.config != nil {
		return v.config.Validation.MinWorkMinutes
	}
	return 15 // Default minimum
}

// BreakMinMinutes returns the configured minimum break duration or default
func (v *Validator) BreakMinMinutes() int {
	if v.config != nil {
		return v.config.Validation.BreakMinMinutes
	}
	return 1 // Default minimum
}

// BreakMaxMinutes returns the configured maximum break duration or default
func (v *Validator) BreakMaxMinutes() int {
	if v.config != nil {
		return v.config.Validation.BreakMaxMinutes
	}
	return 120 // Default maximum
}
