package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestShiftTotalDuration(t *testing.T) {
	shift := NewShift("S1", "D1")
	shift.SignOnSeconds = intPtr(21600)
	shift.SignOffSeconds = intPtr(54000)

	duration, ok := shift.TotalDurationSeconds()
	require.True(t, ok)
	assert.Equal(t, 32400, duration)

	unknown := NewShift("S2", "D2")
	_, ok = unknown.TotalDurationSeconds()
	assert.False(t, ok)
}

func TestShiftPaidTimeWithUnpaidBreak(t *testing.T) {
	shift := NewShift("S1", "D1")
	shift.SignOnSeconds = intPtr(21600)
	shift.SignOffSeconds = intPtr(54000)
	shift.AddBreak(NewBreak(36000, 37800))

	paid, ok := shift.PaidTimeSeconds()
	require.True(t, ok)
	assert.Equal(t, 30600, paid)
}

func TestShiftPaidTimeSaturates(t *testing.T) {
	shift := NewShift("S1", "D1")
	shift.SignOnSeconds = intPtr(0)
	shift.SignOffSeconds = intPtr(600)
	shift.AddBreak(NewBreak(0, 3600))

	paid, ok := shift.PaidTimeSeconds()
	require.True(t, ok)
	assert.Equal(t, 0, paid)
}

func TestShiftMixedBreaks(t *testing.T) {
	shift := NewShift("S1", "D1")
	shift.SignOnSeconds = intPtr(21600)
	shift.SignOffSeconds = intPtr(54000)
	shift.AddBreak(NewPaidBreak(28800, 29700))
	shift.AddBreak(NewBreak(36000, 37800))

	assert.Equal(t, 900, shift.PaidBreakTimeSeconds())
	assert.Equal(t, 1800, shift.UnpaidBreakTimeSeconds())
	assert.Equal(t, 2700, shift.TotalBreakTimeSeconds())
}

func TestShiftBreaksValid(t *testing.T) {
	shift := NewShift("S1", "D1")
	shift.SignOnSeconds = intPtr(21600)
	shift.SignOffSeconds = intPtr(54000)
	shift.AddBreak(NewBreak(28800, 29700))
	shift.AddBreak(NewBreak(36000, 37800))
	assert.True(t, shift.BreaksValid())

	shift.AddBreak(NewBreak(29000, 29500))
	assert.False(t, shift.BreaksValid())
}

func TestShiftBreakOutsideBoundsInvalid(t *testing.T) {
	shift := NewShift("S1", "D1")
	shift.SignOnSeconds = intPtr(21600)
	shift.SignOffSeconds = intPtr(54000)
	shift.AddBreak(NewBreak(20000, 21000))
	assert.False(t, shift.BreaksValid())
}

func TestBreakDurationSaturates(t *testing.T) {
	assert.Equal(t, 1800, NewBreak(36000, 37800).DurationSeconds())
	assert.Equal(t, 0, NewBreak(37800, 36000).DurationSeconds())
}

func TestShiftSummary(t *testing.T) {
	shift := NewShift("S1", "D1")
	shift.SignOnSeconds = intPtr(21600)
	shift.SignOffSeconds = intPtr(54000)
	shift.AddBreak(NewBreak(36000, 37800).WithLocation("CANTEEN"))

	summary := shift.Summary()
	assert.Equal(t, "S1", summary.ShiftID)
	assert.True(t, summary.HasDuration)
	assert.Equal(t, 32400, summary.TotalDurationSeconds)
	assert.True(t, summary.HasPaidTime)
	assert.Equal(t, 30600, summary.PaidTimeSeconds)
	assert.Equal(t, 1, summary.BreakCount)
	assert.Equal(t, 1800, summary.TotalBreakTimeSeconds)
}
