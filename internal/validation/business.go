package validation

import (
	"fmt"

	"rosterkit.transitops.org/internal/models"
)

// BusinessRuleChecker validates operational thresholds: trip and duty
// lengths, layovers, breaks, and continuous driving.
type BusinessRuleChecker struct {
	config Config
}

// NewBusinessRuleChecker creates a checker with the given configuration.
func NewBusinessRuleChecker(config Config) *BusinessRuleChecker {
	return &BusinessRuleChecker{config: config}
}

// CheckRow validates one row in isolation.
func (c *BusinessRuleChecker) CheckRow(row models.ScheduleRow, rowIndex int) CheckResult {
	var result CheckResult
	rules := c.config.Rules

	if row.IsRevenue() {
		if duration, ok := row.DurationSeconds(); ok && duration > rules.MaxTripDurationSeconds {
			result.Errors = append(result.Errors, Error{
				Kind:     ErrTripTooLong,
				Category: CategoryBusinessRule,
				Message: fmt.Sprintf("trip duration %d seconds (%.1f h) exceeds the maximum %d seconds",
					duration, float64(duration)/3600.0, rules.MaxTripDurationSeconds),
				Context: fmt.Sprintf("row %d", rowIndex),
			})
		}
	}

	if row.IsBreakOrRelief() {
		if duration, ok := row.DurationSeconds(); ok && duration < rules.MinBreakDurationSeconds {
			result.Errors = append(result.Errors, Error{
				Kind:     ErrBreakTooShort,
				Category: CategoryBusinessRule,
				Message: fmt.Sprintf("break duration %d seconds (%.1f min) is below the minimum %d seconds",
					duration, float64(duration)/60.0, rules.MinBreakDurationSeconds),
				Context: fmt.Sprintf("row %d", rowIndex),
			})
		}
	}

	if rules.FlagMissingCoordinates && row.IsRevenue() {
		if row.StartLat == nil || row.StartLon == nil {
			result.Warnings = append(result.Warnings, Warning{
				Kind:    WarnMissingStartCoordinates,
				Message: "revenue trip has no start coordinates",
				Context: fmt.Sprintf("row %d", rowIndex),
			})
		}
		if row.EndLat == nil || row.EndLon == nil {
			result.Warnings = append(result.Warnings, Warning{
				Kind:    WarnMissingEndCoordinates,
				Message: "revenue trip has no end coordinates",
				Context: fmt.Sprintf("row %d", rowIndex),
			})
		}
	}

	return result
}

// CheckLayover validates the rest between two adjacent revenue trips.
// Non-revenue neighbors are out of scope; so are pairs with a missing
// boundary time or a non-positive gap (the chronology check owns those).
func (c *BusinessRuleChecker) CheckLayover(prev, curr models.ScheduleRow, rowIndex int) CheckResult {
	var result CheckResult
	if !prev.IsRevenue() || !curr.IsRevenue() {
		return result
	}

	prevEnd, okPrev := prev.EndSeconds()
	currStart, okCurr := curr.StartSeconds()
	if !okPrev || !okCurr || currStart <= prevEnd {
		return result
	}

	layover := currStart - prevEnd
	if layover < c.config.Rules.MinLayoverSeconds {
		result.Errors = append(result.Errors, Error{
			Kind:     ErrLayoverTooShort,
			Category: CategoryBusinessRule,
			Message: fmt.Sprintf("layover %d seconds (%.1f min) is below the minimum %d seconds",
				layover, float64(layover)/60.0, c.config.Rules.MinLayoverSeconds),
			Context: fmt.Sprintf("rows %d-%d", rowIndex-1, rowIndex),
		})
	}
	return result
}

// CheckDuty validates one duty's length and its pieces of work.
func (c *BusinessRuleChecker) CheckDuty(duty *models.Duty) CheckResult {
	var result CheckResult
	rules := c.config.Rules

	if duration, ok := duty.DurationSeconds(); ok && duration > rules.MaxDutyLengthSeconds {
		result.Errors = append(result.Errors, Error{
			Kind:     ErrDutyTooLong,
			Category: CategoryBusinessRule,
			Message: fmt.Sprintf("duty length %d seconds (%.1f h) exceeds the maximum %d seconds",
				duration, float64(duration)/3600.0, rules.MaxDutyLengthSeconds),
			Context: fmt.Sprintf("duty %s", duty.DutyID),
		})
	}

	for idx, piece := range duty.PiecesOfWork() {
		if duration, ok := piece.DurationSeconds(); ok && duration > rules.MaxContinuousDrivingSeconds {
			result.Errors = append(result.Errors, Error{
				Kind:     ErrContinuousDrivingTooLong,
				Category: CategoryBusinessRule,
				Message: fmt.Sprintf("continuous driving %d seconds (%.1f h) exceeds the maximum %d seconds",
					duration, float64(duration)/3600.0, rules.MaxContinuousDrivingSeconds),
				Context: fmt.Sprintf("duty %s, piece %d", duty.DutyID, idx),
			})
		}
	}

	return result
}

// CheckSchedule validates every row plus adjacent-row layovers, then
// flags orphan revenue rows when configured.
func (c *BusinessRuleChecker) CheckSchedule(schedule *models.Schedule) CheckResult {
	var combined CheckResult
	rows := schedule.Rows()

	for idx, row := range rows {
		rowResult := c.CheckRow(row, idx)
		combined.Errors = append(combined.Errors, rowResult.Errors...)
		combined.Warnings = append(combined.Warnings, rowResult.Warnings...)

		if idx > 0 {
			layoverResult := c.CheckLayover(rows[idx-1], row, idx)
			combined.Errors = append(combined.Errors, layoverResult.Errors...)
			combined.Warnings = append(combined.Warnings, layoverResult.Warnings...)
		}
	}

	if c.config.Rules.FlagOrphanTrips {
		for idx, row := range rows {
			if row.IsRevenue() && row.Block == "" {
				combined.Warnings = append(combined.Warnings, Warning{
					Kind:    WarnOrphanTrip,
					Message: "revenue trip is not assigned to any block",
					Context: fmt.Sprintf("row %d", idx),
				})
			}
		}
	}

	return combined
}

// CheckDuties validates every duty, in ascending duty-id order.
func (c *BusinessRuleChecker) CheckDuties(schedule *models.Schedule) CheckResult {
	var combined CheckResult
	duties := schedule.Duties()
	for _, dutyID := range sortedDutyIDs(duties) {
		dutyResult := c.CheckDuty(duties[dutyID])
		combined.Errors = append(combined.Errors, dutyResult.Errors...)
		combined.Warnings = append(combined.Warnings, dutyResult.Warnings...)
	}
	return combined
}

func sortedDutyIDs(duties map[string]*models.Duty) []string {
	ids := make(map[string]struct{}, len(duties))
	for id := range duties {
		ids[id] = struct{}{}
	}
	return sortedKeys(ids)
}
