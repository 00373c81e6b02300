package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterkit.transitops.org/internal/models"
)

func TestBusinessTripTooLong(t *testing.T) {
	checker := NewBusinessRuleChecker(NewConfig())

	// A five hour revenue trip breaks the four hour ceiling.
	result := checker.CheckRow(revenueRow("T1", "STOP_A", "STOP_B", "08:00:00", "13:00:00"), 0)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrTripTooLong, result.Errors[0].Kind)
	assert.Equal(t, CategoryBusinessRule, result.Errors[0].Category)

	result = checker.CheckRow(revenueRow("T1", "STOP_A", "STOP_B", "08:00:00", "11:00:00"), 0)
	assert.Empty(t, result.Errors)
}

func TestBusinessTripLengthIgnoredForDeadheads(t *testing.T) {
	checker := NewBusinessRuleChecker(NewConfig())
	row := depotRow(models.KindDeadhead, "STOP_A", "STOP_B", "08:00:00", "14:00:00")
	result := checker.CheckRow(row, 0)
	assert.Empty(t, result.Errors)
}

func TestBusinessBreakTooShort(t *testing.T) {
	checker := NewBusinessRuleChecker(NewConfig())

	// Fifteen minutes is below the thirty minute minimum.
	short := depotRow(models.KindBreak, "STOP_A", "STOP_A", "12:00:00", "12:15:00")
	result := checker.CheckRow(short, 0)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrBreakTooShort, result.Errors[0].Kind)

	ok := depotRow(models.KindBreak, "STOP_A", "STOP_A", "12:00:00", "12:45:00")
	result = checker.CheckRow(ok, 0)
	assert.Empty(t, result.Errors)
}

func TestBusinessLayover(t *testing.T) {
	checker := NewBusinessRuleChecker(NewConfig())

	prev := revenueRow("T1", "STOP_A", "STOP_B", "08:00:00", "08:45:00")

	// Two minutes of layover is too short under the five minute minimum.
	tight := revenueRow("T2", "STOP_B", "STOP_A", "08:47:00", "09:30:00")
	result := checker.CheckLayover(prev, tight, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrLayoverTooShort, result.Errors[0].Kind)
	assert.Equal(t, "rows 0-1", result.Errors[0].Context)

	comfortable := revenueRow("T2", "STOP_B", "STOP_A", "08:55:00", "09:40:00")
	result = checker.CheckLayover(prev, comfortable, 1)
	assert.Empty(t, result.Errors)
}

func TestBusinessLayoverSkipsNonRevenueAndOverlaps(t *testing.T) {
	checker := NewBusinessRuleChecker(NewConfig())
	prev := revenueRow("T1", "STOP_A", "STOP_B", "08:00:00", "08:45:00")

	deadhead := depotRow(models.KindDeadhead, "STOP_B", "STOP_A", "08:46:00", "09:00:00")
	assert.Empty(t, checker.CheckLayover(prev, deadhead, 1).Errors)

	// A zero or negative gap belongs to the chronology check.
	overlap := revenueRow("T2", "STOP_B", "STOP_A", "08:45:00", "09:30:00")
	assert.Empty(t, checker.CheckLayover(prev, overlap, 1).Errors)
}

func TestBusinessDutyTooLong(t *testing.T) {
	checker := NewBusinessRuleChecker(NewConfig())

	duty := models.NewDuty("D1")
	// A ten hour duty exceeds the nine hour maximum.
	duty.AddRow(revenueRow("T1", "STOP_A", "STOP_B", "06:00:00", "10:00:00"))
	duty.AddRow(depotRow(models.KindBreak, "STOP_B", "STOP_B", "10:00:00", "11:00:00"))
	duty.AddRow(revenueRow("T2", "STOP_B", "STOP_A", "11:00:00", "16:00:00"))

	result := checker.CheckDuty(duty)
	found := false
	for _, err := range result.Errors {
		if err.Kind == ErrDutyTooLong {
			found = true
			assert.Contains(t, err.Context, "D1")
		}
	}
	assert.True(t, found)
}

func TestBusinessContinuousDrivingTooLong(t *testing.T) {
	checker := NewBusinessRuleChecker(NewConfig())

	duty := models.NewDuty("D1")
	// Five hours without a break exceeds the 4.5 hour maximum.
	duty.AddRow(revenueRow("T1", "STOP_A", "STOP_B", "06:00:00", "08:30:00"))
	duty.AddRow(revenueRow("T2", "STOP_B", "STOP_A", "08:30:00", "11:00:00"))
	duty.AddRow(depotRow(models.KindBreak, "STOP_A", "STOP_A", "11:00:00", "11:45:00"))
	duty.AddRow(revenueRow("T3", "STOP_A", "STOP_B", "11:45:00", "13:00:00"))

	result := checker.CheckDuty(duty)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrContinuousDrivingTooLong, result.Errors[0].Kind)
	assert.Contains(t, result.Errors[0].Context, "piece 0")
}

func TestBusinessDutyWithBreaksPasses(t *testing.T) {
	checker := NewBusinessRuleChecker(NewConfig())

	duty := models.NewDuty("D1")
	duty.AddRow(revenueRow("T1", "STOP_A", "STOP_B", "06:00:00", "09:00:00"))
	duty.AddRow(depotRow(models.KindBreak, "STOP_B", "STOP_B", "09:00:00", "09:45:00"))
	duty.AddRow(revenueRow("T2", "STOP_B", "STOP_A", "09:45:00", "13:00:00"))

	result := checker.CheckDuty(duty)
	assert.True(t, result.IsValid())
}

func TestBusinessOrphanTripWarning(t *testing.T) {
	schedule := models.NewSchedule()
	assigned := revenueRow("T1", "STOP_A", "STOP_B", "08:00:00", "08:30:00")
	assigned.Block = "B1"
	orphan := revenueRow("T2", "STOP_B", "STOP_A", "09:00:00", "09:30:00")
	schedule.AddRow(assigned)
	schedule.AddRow(orphan)

	result := NewBusinessRuleChecker(NewConfig()).CheckSchedule(schedule)
	warnings := result.WarningsOfKind(WarnOrphanTrip)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Context, "row 1")

	// Lenient rules do not flag orphans.
	result = NewBusinessRuleChecker(LenientConfig()).CheckSchedule(schedule)
	assert.Empty(t, result.WarningsOfKind(WarnOrphanTrip))
}

func TestBusinessMissingCoordinateWarnings(t *testing.T) {
	// Only strict rules flag missing coordinates.
	row := revenueRow("T1", "STOP_A", "STOP_B", "08:00:00", "08:30:00")
	row.StartLat, row.StartLon = floatPtr(40.7128), floatPtr(-74.0060)

	result := NewBusinessRuleChecker(StrictConfig()).CheckRow(row, 0)
	assert.Empty(t, result.WarningsOfKind(WarnMissingStartCoordinates))
	require.Len(t, result.WarningsOfKind(WarnMissingEndCoordinates), 1)

	result = NewBusinessRuleChecker(NewConfig()).CheckRow(row, 0)
	assert.Empty(t, result.Warnings)
}
