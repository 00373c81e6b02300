package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSeconds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantOK  bool
	}{
		{"PlainSeconds", "52200", 52200, true},
		{"HoursMinutesSeconds", "14:30:00", 52200, true},
		{"HoursMinutes", "14:30", 52200, true},
		{"Midnight", "00:00:00", 0, true},
		{"PastMidnight", "25:15:00", 90900, true},
		{"LargePlainSeconds", "90900", 90900, true},
		{"WithWhitespace", " 08:00:00 ", 28800, true},
		{"Empty", "", 0, false},
		{"Garbage", "noon", 0, false},
		{"NegativeSeconds", "-60", 0, false},
		{"NegativeHour", "-1:30:00", 0, false},
		{"TooManyParts", "1:2:3:4", 0, false},
		{"NonNumericPart", "08:xx:00", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimeSeconds(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatTimeSecondsRoundTrip(t *testing.T) {
	for _, seconds := range []int{0, 1, 59, 3600, 52200, 86399, 86400, 90900, 104400} {
		formatted := FormatTimeSeconds(seconds)
		parsed, ok := ParseTimeSeconds(formatted)
		require.True(t, ok, "formatted value %q should parse", formatted)
		assert.Equal(t, seconds, parsed)
	}
}

func TestFormatTimeSecondsNextDay(t *testing.T) {
	assert.Equal(t, "25:15:00", FormatTimeSeconds(90900))
	assert.Equal(t, "24:00:00", FormatTimeSeconds(86400))
}

func TestParseRowKind(t *testing.T) {
	tests := []struct {
		input string
		want  RowKind
	}{
		{"revenue", KindRevenue},
		{"trip", KindRevenue},
		{"service", KindRevenue},
		{"pull_out", KindPullOut},
		{"pullout", KindPullOut},
		{"PO", KindPullOut},
		{"pull-in", KindPullIn},
		{"pi", KindPullIn},
		{"deadhead", KindDeadhead},
		{"DH", KindDeadhead},
		{"dead", KindDeadhead},
		{"non_revenue", KindDeadhead},
		{"break", KindBreak},
		{"brk", KindBreak},
		{"meal", KindBreak},
		{"relief", KindRelief},
		{"changeover", KindRelief},
		{"swap", KindRelief},
		{"layover", KindLayover},
		{"wait", KindLayover},
		{"dwell", KindLayover},
		{"", KindRevenue},
		{"something-else", KindRevenue},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRowKind(tt.input))
		})
	}
}

func TestRowClassification(t *testing.T) {
	revenue := ScheduleRow{Kind: KindRevenue, TripID: "T1"}
	assert.True(t, revenue.IsRevenue())
	assert.False(t, revenue.IsDeadhead())

	// Typed revenue without a trip reference counts as non-revenue.
	untracked := ScheduleRow{Kind: KindRevenue}
	assert.False(t, untracked.IsRevenue())
	assert.False(t, untracked.IsDeadhead())

	for _, kind := range []RowKind{KindPullOut, KindPullIn, KindDeadhead} {
		row := ScheduleRow{Kind: kind}
		assert.True(t, row.IsDeadhead(), kind.String())
		assert.False(t, row.IsRevenue(), kind.String())
	}

	for _, kind := range []RowKind{KindBreak, KindRelief} {
		row := ScheduleRow{Kind: kind}
		assert.True(t, row.IsBreakOrRelief(), kind.String())
		assert.False(t, row.IsDeadhead(), kind.String())
	}

	layover := ScheduleRow{Kind: KindLayover}
	assert.False(t, layover.IsDeadhead())
	assert.False(t, layover.IsBreakOrRelief())
}

func TestRowDurationSeconds(t *testing.T) {
	row := ScheduleRow{StartTime: "08:00:00", EndTime: "09:30:00"}
	duration, ok := row.DurationSeconds()
	require.True(t, ok)
	assert.Equal(t, 5400, duration)

	// End before start yields no duration.
	backwards := ScheduleRow{StartTime: "09:00:00", EndTime: "08:00:00"}
	_, ok = backwards.DurationSeconds()
	assert.False(t, ok)

	// A missing endpoint yields no duration rather than zero.
	missing := ScheduleRow{StartTime: "08:00:00"}
	_, ok = missing.DurationSeconds()
	assert.False(t, ok)

	unparsable := ScheduleRow{StartTime: "dawn", EndTime: "09:00:00"}
	_, ok = unparsable.DurationSeconds()
	assert.False(t, ok)
}
