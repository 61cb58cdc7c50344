package timecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ojt-tracker/internal/domain"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 14, h, m, 0, 0, time.Local)
}

func ptr(t time.Time) *time.Time { return &t }

func brk(startH, startM, endH, endM int) domain.BreakInterval {
	end := at(endH, endM)
	return domain.BreakInterval{Start: at(startH, startM), End: &end}
}

func TestWorkSeconds(t *testing.T) {
	tests := []struct {
		name     string
		timeIn   time.Time
		timeOut  time.Time
		breaks   []domain.BreakInterval
		expected int64
	}{
		{
			name:     "full day no breaks",
			timeIn:   at(9, 0),
			timeOut:  at(17, 0),
			expected: 8 * 3600,
		},
		{
			name:     "one hour lunch subtracted",
			timeIn:   at(9, 0),
			timeOut:  at(17, 0),
			breaks:   []domain.BreakInterval{brk(12, 0, 13, 0)},
			expected: 7 * 3600,
		},
		{
			name:     "multiple breaks accumulate in seconds",
			timeIn:   at(9, 0),
			timeOut:  at(17, 0),
			breaks:   []domain.BreakInterval{brk(10, 30, 10, 45), brk(12, 0, 13, 0), brk(15, 0, 15, 10)},
			expected: 8*3600 - 15*60 - 60*60 - 10*60,
		},
		{
			name:     "incomplete break contributes nothing",
			timeIn:   at(9, 0),
			timeOut:  at(17, 0),
			breaks:   []domain.BreakInterval{{Start: at(12, 0)}},
			expected: 8 * 3600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WorkSeconds(tt.timeIn, tt.timeOut, tt.breaks))
		})
	}
}

func TestRoundHours(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int64
		expected float64
	}{
		{"exact hour", 3600, 1.00},
		{"seven hours", 7 * 3600, 7.00},
		{"quarter hour", 900, 0.25},
		{"rounds up", 3600 + 1080, 1.30}, // 1h18m = 1.3
		{"five past the hour", 5*60 + 3600, 1.08},
		{"zero", 0, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, RoundHours(tt.seconds), 0.0001)
		})
	}
}

func TestComputeLiveHours(t *testing.T) {
	tests := []struct {
		name     string
		timeIn   time.Time
		timeOut  *time.Time
		breaks   []domain.BreakInterval
		expected float64
	}{
		{
			name:     "nine to five with lunch is 7.00",
			timeIn:   at(9, 0),
			timeOut:  ptr(at(17, 0)),
			breaks:   []domain.BreakInterval{brk(12, 0, 13, 0)},
			expected: 7.00,
		},
		{
			name:     "zero time in",
			timeOut:  ptr(at(17, 0)),
			expected: 0,
		},
		{
			name:     "nil time out",
			timeIn:   at(9, 0),
			expected: 0,
		},
		{
			name:     "time out before time in",
			timeIn:   at(17, 0),
			timeOut:  ptr(at(9, 0)),
			expected: 0,
		},
		{
			name:     "breaks exceeding session clamp to zero",
			timeIn:   at(9, 0),
			timeOut:  ptr(at(9, 30)),
			breaks:   []domain.BreakInterval{brk(9, 0, 10, 0)},
			expected: 0,
		},
		{
			name:     "open break ignored in preview",
			timeIn:   at(9, 0),
			timeOut:  ptr(at(17, 0)),
			breaks:   []domain.BreakInterval{{Start: at(12, 0)}},
			expected: 8.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLiveHours(tt.timeIn, tt.timeOut, tt.breaks)
			assert.InDelta(t, tt.expected, got, 0.0001)

			// Idempotence: identical inputs give identical output.
			assert.Equal(t, got, ComputeLiveHours(tt.timeIn, tt.timeOut, tt.breaks))
		})
	}
}

func TestComputeLiveHoursMatchesValidatedArithmetic(t *testing.T) {
	// The preview path must use exactly the same interval subtraction as the
	// validated path so the two can never diverge.
	breaks := []domain.BreakInterval{brk(10, 15, 10, 45), brk(12, 30, 13, 15)}
	timeOut := at(18, 0)

	seconds := WorkSeconds(at(9, 0), timeOut, breaks)
	assert.Equal(t, RoundHours(seconds), ComputeLiveHours(at(9, 0), &timeOut, breaks))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "7.00", FormatHours(7))
	assert.Equal(t, "0.25", FormatHours(0.25))
	assert.Equal(t, "0.00", FormatHours(0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "7h 30m", FormatDuration(7*3600+30*60))
	assert.Equal(t, "45m", FormatDuration(45*60))
	assert.Equal(t, "0m", FormatDuration(-5))
}

func TestCombineDateTime(t *testing.T) {
	ts, err := CombineDateTime("2026-03-14", "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local), ts)

	_, err = CombineDateTime("14/03/2026", "09:30")
	assert.Error(t, err)

	_, err = CombineDateTime("2026-03-14", "9:30pm")
	assert.Error(t, err)
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(at(0, 0), at(23, 59)))
	assert.False(t, SameDay(at(23, 59), at(23, 59).Add(time.Minute)))
}
