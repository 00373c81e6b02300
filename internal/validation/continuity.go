package validation

import (
	"fmt"

	"rosterkit.transitops.org/internal/models"
)

// ContinuityChecker validates that blocks hang together: rows run in
// chronological order, locations connect, gaps stay reasonable, and the
// block's total span fits the configured bounds.
type ContinuityChecker struct {
	config Config
}

// NewContinuityChecker creates a checker with the given configuration.
func NewContinuityChecker(config Config) *ContinuityChecker {
	return &ContinuityChecker{config: config}
}

// CheckBlock validates one block.
func (c *ContinuityChecker) CheckBlock(block *models.Block) CheckResult {
	var result CheckResult
	rules := c.config.Rules

	// Chronology: a row starting before the previous row's end is an
	// error. Pairs with an unparsable boundary are skipped.
	prevEnd, havePrev := 0, false
	for idx, row := range block.Rows {
		if start, ok := row.StartSeconds(); ok && havePrev && start < prevEnd {
			result.Errors = append(result.Errors, Error{
				Kind:     ErrChronology,
				Category: CategoryContinuity,
				Message: fmt.Sprintf("row %d starts at %s but the previous row ends at %s",
					idx, models.FormatTimeSeconds(start), models.FormatTimeSeconds(prevEnd)),
				Context: fmt.Sprintf("block %s, row %d", block.BlockID, idx),
			})
		}
		prevEnd, havePrev = row.EndSeconds()
	}

	for _, idx := range block.FindLocationDiscontinuities() {
		result.Warnings = append(result.Warnings, Warning{
			Kind: WarnLocationDiscontinuity,
			Message: fmt.Sprintf("row %d ends at %q but row %d starts at %q",
				idx, block.Rows[idx].EndPlace, idx+1, block.Rows[idx+1].StartPlace),
			Context: fmt.Sprintf("block %s, row %d", block.BlockID, idx),
		})
	}

	maxGap := rules.MinLayoverSeconds * 10
	for _, gap := range block.FindGaps() {
		if gap.Seconds > maxGap {
			result.Warnings = append(result.Warnings, Warning{
				Kind: WarnLargeGap,
				Message: fmt.Sprintf("gap of %d seconds (%.1f min) between rows %d and %d",
					gap.Seconds, float64(gap.Seconds)/60.0, gap.Index, gap.Index+1),
				Context: fmt.Sprintf("block %s, row %d", block.BlockID, gap.Index),
			})
		}
	}

	if duration, ok := block.DurationSeconds(); ok {
		if rules.MinBlockDurationSeconds > 0 && duration < rules.MinBlockDurationSeconds {
			result.Errors = append(result.Errors, Error{
				Kind:     ErrBlockDurationTooShort,
				Category: CategoryContinuity,
				Message: fmt.Sprintf("block duration %d seconds (%.1f h) is below the minimum %d seconds",
					duration, float64(duration)/3600.0, rules.MinBlockDurationSeconds),
				Context: fmt.Sprintf("block %s", block.BlockID),
			})
		}
		if duration > rules.MaxBlockDurationSeconds {
			result.Errors = append(result.Errors, Error{
				Kind:     ErrBlockDurationTooLong,
				Category: CategoryContinuity,
				Message: fmt.Sprintf("block duration %d seconds (%.1f h) exceeds the maximum %d seconds",
					duration, float64(duration)/3600.0, rules.MaxBlockDurationSeconds),
				Context: fmt.Sprintf("block %s", block.BlockID),
			})
		}
	}

	// Missing depot movements are a completeness signal, never an error.
	if block.PullOut() == nil {
		result.Warnings = append(result.Warnings, Warning{
			Kind:    WarnMissingPullOut,
			Message: "block has no explicit pull-out row",
			Context: fmt.Sprintf("block %s", block.BlockID),
		})
	}
	if block.PullIn() == nil {
		result.Warnings = append(result.Warnings, Warning{
			Kind:    WarnMissingPullIn,
			Message: "block has no explicit pull-in row",
			Context: fmt.Sprintf("block %s", block.BlockID),
		})
	}

	return result
}

// CheckSchedule validates every block, in ascending block-id order.
func (c *ContinuityChecker) CheckSchedule(schedule *models.Schedule) CheckResult {
	var combined CheckResult
	blocks := schedule.Blocks()
	for _, blockID := range schedule.BlockIDs() {
		blockResult := c.CheckBlock(blocks[blockID])
		combined.Errors = append(combined.Errors, blockResult.Errors...)
		combined.Warnings = append(combined.Warnings, blockResult.Warnings...)
	}
	return combined
}
