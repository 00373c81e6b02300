package validation

import (
	"log/slog"

	"rosterkit.transitops.org/internal/logging"
	"rosterkit.transitops.org/internal/models"
	"rosterkit.transitops.org/internal/reference"
)

// Validator coordinates the three checkers in a fixed order: reference
// integrity, block continuity, business rules, then duty constraints.
// The error budget is checked after every appended error; when it is
// reached the result is returned immediately with Truncated set.
type Validator struct {
	config Config
	logger *slog.Logger
}

// NewValidator creates a validator with the given configuration.
func NewValidator(config Config) *Validator {
	return &Validator{config: config}
}

// DefaultValidator creates a validator with the standard configuration.
func DefaultValidator() *Validator {
	return NewValidator(NewConfig())
}

// WithLogger attaches a logger for per-run reporting.
func (v *Validator) WithLogger(logger *slog.Logger) *Validator {
	v.logger = logger
	return v
}

// Validate checks the schedule against the reference timetable and every
// enabled rule set. Pass a spatial index to enable the coordinate
// plausibility check; nil disables it.
func (v *Validator) Validate(schedule *models.Schedule, tt *reference.Timetable, spatial *reference.SpatialIndex) Result {
	result := Result{RowsValidated: schedule.Len()}

	integrity := NewIntegrityChecker(tt, v.config)
	if spatial != nil {
		integrity = integrity.WithSpatialIndex(spatial)
	}
	if v.appendFindings(&result, integrity.CheckSchedule(schedule)) {
		return v.finish(result)
	}

	v.runStructuralChecks(schedule, &result)
	return v.finish(result)
}

// ValidateStructure checks continuity, business, and duty rules without
// a reference timetable.
func (v *Validator) ValidateStructure(schedule *models.Schedule) Result {
	result := Result{RowsValidated: schedule.Len()}
	v.runStructuralChecks(schedule, &result)
	return v.finish(result)
}

func (v *Validator) runStructuralChecks(schedule *models.Schedule, result *Result) {
	if result.Truncated {
		return
	}

	if v.config.ValidateBlockContinuity {
		result.BlocksValidated = len(schedule.BlockIDs())
		continuity := NewContinuityChecker(v.config)
		if v.appendFindings(result, continuity.CheckSchedule(schedule)) {
			return
		}
	}

	business := NewBusinessRuleChecker(v.config)
	if v.appendFindings(result, business.CheckSchedule(schedule)) {
		return
	}

	if v.config.ValidateDutyConstraints {
		result.DutiesValidated = len(schedule.Duties())
		if v.appendFindings(result, business.CheckDuties(schedule)) {
			return
		}
	}
}

// appendFindings merges one checker's findings into the result, checking
// the error budget after each error. It reports whether processing must
// stop. Warnings are dropped wholesale when disabled.
func (v *Validator) appendFindings(result *Result, check CheckResult) bool {
	for _, err := range check.Errors {
		result.Errors = append(result.Errors, err)
		if v.config.MaxErrors > 0 && len(result.Errors) >= v.config.MaxErrors {
			result.Truncated = true
			return true
		}
	}
	if v.config.GenerateWarnings {
		result.Warnings = append(result.Warnings, check.Warnings...)
	}
	return result.Truncated
}

func (v *Validator) finish(result Result) Result {
	if v.logger != nil {
		logging.LogOperation(v.logger, "validation_completed",
			slog.Int("rows", result.RowsValidated),
			slog.Int("errors", len(result.Errors)),
			slog.Int("warnings", len(result.Warnings)),
			slog.Bool("truncated", result.Truncated))
	}
	return result
}
