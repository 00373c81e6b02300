package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDutyRow(start, end string, kind RowKind) ScheduleRow {
	row := ScheduleRow{StartTime: start, EndTime: end, Kind: kind}
	if kind == KindRevenue {
		row.TripID = "T1"
	}
	return row
}

func TestDutyDuration(t *testing.T) {
	duty := NewDuty("D1")
	duty.AddRow(makeDutyRow("06:00:00", "10:00:00", KindRevenue))
	duty.AddRow(makeDutyRow("10:30:00", "14:00:00", KindRevenue))

	duration, ok := duty.DurationSeconds()
	require.True(t, ok)
	assert.Equal(t, 28800, duration)
}

func TestDutySignOnOffOverride(t *testing.T) {
	duty := NewDuty("D1")
	duty.AddRow(makeDutyRow("06:00:00", "10:00:00", KindRevenue))
	duty.SignOnTime = "05:45:00"
	duty.SignOffTime = "10:15:00"

	start, ok := duty.StartSeconds()
	require.True(t, ok)
	assert.Equal(t, 20700, start)

	end, ok := duty.EndSeconds()
	require.True(t, ok)
	assert.Equal(t, 36900, end)

	// An unparsable override falls back to the row-derived time.
	duty.SignOnTime = "early"
	start, ok = duty.StartSeconds()
	require.True(t, ok)
	assert.Equal(t, 21600, start)
}

func TestDutySplitDuty(t *testing.T) {
	duty := NewDuty("D1")
	duty.AddRow(makeDutyRow("06:00:00", "10:00:00", KindRevenue))
	duty.AddRow(makeDutyRow("14:00:00", "18:00:00", KindRevenue))

	assert.True(t, duty.IsSplitDuty(7200))
	// The 4-hour gap meets a 4-hour threshold exactly.
	assert.True(t, duty.IsSplitDuty(14400))
	assert.False(t, duty.IsSplitDuty(18000))
}

func TestDutyPiecesOfWork(t *testing.T) {
	duty := NewDuty("D1")
	duty.AddRow(makeDutyRow("06:00:00", "10:00:00", KindRevenue))
	duty.AddRow(makeDutyRow("10:00:00", "10:30:00", KindBreak))
	duty.AddRow(makeDutyRow("10:30:00", "14:00:00", KindRevenue))

	pieces := duty.PiecesOfWork()
	require.Len(t, pieces, 2)

	first, ok := pieces[0].DurationSeconds()
	require.True(t, ok)
	assert.Equal(t, 14400, first)

	second, ok := pieces[1].DurationSeconds()
	require.True(t, ok)
	assert.Equal(t, 12600, second)
}

func TestDutyPieceEndNeverShrinks(t *testing.T) {
	duty := NewDuty("D1")
	duty.AddRow(makeDutyRow("06:00:00", "10:00:00", KindRevenue))
	// A later row ending earlier must not pull the piece's end backwards.
	duty.AddRow(makeDutyRow("06:30:00", "07:00:00", KindDeadhead))

	pieces := duty.PiecesOfWork()
	require.Len(t, pieces, 1)

	end, ok := pieces[0].EndSeconds()
	require.True(t, ok)
	assert.Equal(t, 36000, end)
}

func TestDutyDrivingAndBreakTime(t *testing.T) {
	duty := NewDuty("D1")
	duty.AddRow(makeDutyRow("06:00:00", "10:00:00", KindRevenue))
	duty.AddRow(makeDutyRow("10:00:00", "10:30:00", KindBreak))
	duty.AddRow(makeDutyRow("10:30:00", "14:00:00", KindRevenue))
	duty.AddRow(makeDutyRow("14:00:00", "14:15:00", KindBreak))
	duty.AddRow(makeDutyRow("14:15:00", "14:45:00", KindDeadhead))

	assert.Equal(t, 28800, duty.DrivingTimeSeconds())
	assert.Equal(t, 2700, duty.BreakTimeSeconds())
	assert.Len(t, duty.Breaks(), 2)
	assert.Empty(t, duty.Reliefs())
}

func TestDutyBlockIDs(t *testing.T) {
	duty := NewDuty("D1")
	rowB2 := makeDutyRow("06:00:00", "08:00:00", KindRevenue)
	rowB2.Block = "B2"
	rowB1 := makeDutyRow("08:00:00", "10:00:00", KindRevenue)
	rowB1.Block = "B1"
	rowB1Again := makeDutyRow("10:00:00", "12:00:00", KindRevenue)
	rowB1Again.Block = "B1"
	duty.AddRow(rowB2)
	duty.AddRow(rowB1)
	duty.AddRow(rowB1Again)

	assert.Equal(t, []string{"B1", "B2"}, duty.BlockIDs())
}

func TestDutyFirstWriterWinsAttributes(t *testing.T) {
	duty := NewDuty("D1")
	duty.AddRow(ScheduleRow{Kind: KindRevenue, TripID: "T1"})
	duty.AddRow(ScheduleRow{Kind: KindRevenue, TripID: "T2", RunNumber: "R7", Depot: "D_EAST"})
	duty.AddRow(ScheduleRow{Kind: KindRevenue, TripID: "T3", RunNumber: "R9", Depot: "D_WEST"})

	assert.Equal(t, "R7", duty.RunNumber)
	assert.Equal(t, "D_EAST", duty.Depot)
}

func TestDutyToShift(t *testing.T) {
	duty := NewDuty("D1")
	duty.Depot = "D_EAST"
	duty.AddRow(makeDutyRow("06:00:00", "10:00:00", KindRevenue))
	brk := makeDutyRow("10:00:00", "10:30:00", KindBreak)
	brk.StartPlace = "CANTEEN"
	duty.AddRow(brk)
	duty.AddRow(makeDutyRow("10:30:00", "14:00:00", KindRevenue))

	shift := duty.ToShift()
	assert.Equal(t, "D1", shift.ShiftID)
	assert.Equal(t, "D1", shift.DutyID)
	assert.Equal(t, "D_EAST", shift.Depot)
	require.NotNil(t, shift.SignOnSeconds)
	assert.Equal(t, 21600, *shift.SignOnSeconds)
	require.NotNil(t, shift.SignOffSeconds)
	assert.Equal(t, 50400, *shift.SignOffSeconds)

	require.Len(t, shift.Breaks, 1)
	assert.Equal(t, "CANTEEN", shift.Breaks[0].Location)
	assert.False(t, shift.Breaks[0].IsPaid)
}

func TestDutySummary(t *testing.T) {
	duty := NewDuty("D1")
	r1 := makeDutyRow("06:00:00", "10:00:00", KindRevenue)
	r1.Block = "B1"
	duty.AddRow(r1)
	duty.AddRow(makeDutyRow("10:00:00", "10:30:00", KindBreak))
	r2 := makeDutyRow("10:30:00", "14:00:00", KindRevenue)
	r2.Block = "B2"
	duty.AddRow(r2)

	summary := duty.Summary()
	assert.Equal(t, "D1", summary.DutyID)
	assert.Equal(t, 3, summary.TotalRows)
	assert.True(t, summary.HasDuration)
	assert.Equal(t, 28800, summary.DurationSeconds)
	assert.Equal(t, 2, summary.PiecesOfWork)
	assert.Equal(t, 2, summary.BlocksWorked)
}
