package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterkit.transitops.org/internal/models"
)

func cleanSchedule() *models.Schedule {
	schedule := models.NewSchedule()

	pullOut := depotRow(models.KindPullOut, "DEPOT", "STOP_A", "07:45:00", "08:00:00")
	pullOut.Block = "B1"
	pullOut.RunNumber = "R1"
	schedule.AddRow(pullOut)

	t1 := revenueRow("T1", "STOP_A", "STOP_B", "08:00:00", "08:45:00")
	t1.Block = "B1"
	t1.RunNumber = "R1"
	schedule.AddRow(t1)

	t2 := revenueRow("T2", "STOP_B", "STOP_A", "08:55:00", "09:40:00")
	t2.Block = "B1"
	t2.RunNumber = "R1"
	schedule.AddRow(t2)

	pullIn := depotRow(models.KindPullIn, "STOP_A", "DEPOT", "09:40:00", "09:55:00")
	pullIn.Block = "B1"
	pullIn.RunNumber = "R1"
	schedule.AddRow(pullIn)

	return schedule
}

func TestValidateCleanSchedule(t *testing.T) {
	result := DefaultValidator().Validate(cleanSchedule(), testTimetable(), nil)

	assert.True(t, result.IsValid())
	assert.Empty(t, result.Warnings)
	assert.False(t, result.Truncated)
	assert.Equal(t, 4, result.RowsValidated)
	assert.Equal(t, 1, result.BlocksValidated)
	assert.Equal(t, 1, result.DutiesValidated)
}

func TestValidateComplianceLevels(t *testing.T) {
	schedule := cleanSchedule()
	ghost := revenueRow("T_GHOST", "STOP_A", "STOP_B", "10:00:00", "10:30:00")
	ghost.Block = "B2"
	ghost.RunNumber = "R2"
	schedule.AddRow(ghost)

	strict := NewValidator(StrictConfig()).Validate(schedule, testTimetable(), nil)
	assert.False(t, strict.IsValid())
	require.NotEmpty(t, strict.ErrorsByCategory(CategoryIntegrity))
	assert.Equal(t, ErrMissingTrip, strict.ErrorsByCategory(CategoryIntegrity)[0].Kind)

	standard := DefaultValidator().Validate(schedule, testTimetable(), nil)
	assert.Empty(t, standard.ErrorsByCategory(CategoryIntegrity))
	assert.NotEmpty(t, standard.WarningsByKind(WarnTripNotFound))

	lenient := NewValidator(LenientConfig()).Validate(schedule, testTimetable(), nil)
	assert.True(t, lenient.IsValid())
	assert.Empty(t, lenient.Warnings)
}

func TestValidateErrorBudgetTruncation(t *testing.T) {
	schedule := models.NewSchedule()
	for i := 0; i < 20; i++ {
		row := revenueRow("T_GHOST", "STOP_A", "STOP_B", "08:00:00", "08:30:00")
		row.Block = "B1"
		schedule.AddRow(row)
	}

	config := StrictConfig().WithMaxErrors(5)
	result := NewValidator(config).Validate(schedule, testTimetable(), nil)

	assert.True(t, result.Truncated)
	assert.Equal(t, 5, result.ErrorCount())
	assert.False(t, result.IsValid())
}

func TestValidateUnlimitedErrorsWhenBudgetZero(t *testing.T) {
	schedule := models.NewSchedule()
	for i := 0; i < 20; i++ {
		start := 8*3600 + i*1800
		row := revenueRow("T_GHOST", "STOP_A", "STOP_B",
			models.FormatTimeSeconds(start), models.FormatTimeSeconds(start+1200))
		row.Block = "B1"
		schedule.AddRow(row)
	}

	result := NewValidator(StrictConfig()).Validate(schedule, testTimetable(), nil)
	assert.False(t, result.Truncated)
	assert.Equal(t, 20, len(result.ErrorsByCategory(CategoryIntegrity)))
	assert.Equal(t, 20, result.ErrorCount())
}

func TestValidateWarningToggleSuppressesEverything(t *testing.T) {
	schedule := cleanSchedule()
	// An unassigned trip with a ghost reference produces several warnings
	// under the standard configuration.
	orphan := revenueRow("T_GHOST", "STOP_X", "STOP_B", "10:00:00", "10:30:00")
	schedule.AddRow(orphan)

	noisy := DefaultValidator().Validate(schedule, testTimetable(), nil)
	assert.NotEmpty(t, noisy.Warnings)

	quiet := NewValidator(NewConfig().WithWarnings(false)).Validate(schedule, testTimetable(), nil)
	assert.Empty(t, quiet.Warnings)
	assert.Equal(t, len(noisy.Errors), len(quiet.Errors))
}

func TestValidateStructureWithoutTimetable(t *testing.T) {
	schedule := cleanSchedule()
	late := revenueRow("T3", "STOP_A", "STOP_B", "09:00:00", "09:30:00")
	late.Block = "B1"
	late.RunNumber = "R1"
	schedule.AddRow(late)

	result := DefaultValidator().ValidateStructure(schedule)

	// The out-of-order trip overlaps the pull-in row once sorted.
	assert.False(t, result.IsValid())
	assert.NotEmpty(t, result.ErrorsByCategory(CategoryContinuity))
	assert.Empty(t, result.ErrorsByCategory(CategoryIntegrity))
}

func TestValidateSkipsDisabledCheckers(t *testing.T) {
	config := NewConfig()
	config.ValidateBlockContinuity = false
	config.ValidateDutyConstraints = false

	result := NewValidator(config).Validate(cleanSchedule(), testTimetable(), nil)
	assert.Equal(t, 0, result.BlocksValidated)
	assert.Equal(t, 0, result.DutiesValidated)
	assert.True(t, result.IsValid())
}

func TestValidateResultCategoryFilters(t *testing.T) {
	schedule := models.NewSchedule()
	long := revenueRow("T1", "STOP_A", "STOP_B", "05:00:00", "23:00:00")
	long.Block = "B1"
	schedule.AddRow(long)

	result := DefaultValidator().Validate(schedule, testTimetable(), nil)

	assert.NotEmpty(t, result.ErrorsByCategory(CategoryContinuity))
	assert.NotEmpty(t, result.ErrorsByCategory(CategoryBusinessRule))
	assert.Empty(t, result.ErrorsByCategory(CategoryIntegrity))
}
