// Package models defines the schedule data model: rows, blocks, duties,
// shifts, and deadheads, along with the wall-clock time representation
// shared by all of them.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// RowKind identifies what kind of movement or activity a schedule row
// represents.
type RowKind int

const (
	// KindRevenue is a passenger-carrying trip (references a GTFS trip id).
	KindRevenue RowKind = iota
	// KindPullOut is a depot-to-first-stop movement.
	KindPullOut
	// KindPullIn is a last-stop-to-depot movement.
	KindPullIn
	// KindDeadhead is an interlining movement between trips.
	KindDeadhead
	// KindBreak is a driver break.
	KindBreak
	// KindRelief is a driver relief/changeover.
	KindRelief
	// KindLayover is scheduled idle time at a stop.
	KindLayover
)

func (k RowKind) String() string {
	switch k {
	case KindPullOut:
		return "pull_out"
	case KindPullIn:
		return "pull_in"
	case KindDeadhead:
		return "deadhead"
	case KindBreak:
		return "break"
	case KindRelief:
		return "relief"
	case KindLayover:
		return "layover"
	default:
		return "revenue"
	}
}

// ParseRowKind maps the row-type labels found in schedule exports to a
// RowKind. Unknown labels default to revenue, matching how most
// scheduling systems omit the type column for in-service trips.
func ParseRowKind(s string) RowKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "revenue", "trip", "service":
		return KindRevenue
	case "pull_out", "pullout", "pull-out", "po":
		return KindPullOut
	case "pull_in", "pullin", "pull-in", "pi":
		return KindPullIn
	case "deadhead", "dh", "dead", "non_revenue":
		return KindDeadhead
	case "break", "brk", "meal":
		return KindBreak
	case "relief", "changeover", "swap":
		return KindRelief
	case "layover", "wait", "dwell":
		return KindLayover
	default:
		return KindRevenue
	}
}

// ScheduleRow is a single row in a schedule file: one movement or
// activity, which could be a revenue trip, a deadhead movement
// (pull-out, pull-in, interlining), or a break/relief.
//
// Optional string fields use "" for absent. Coordinates are pointers so
// that "not supplied" is distinguishable from (0, 0).
type ScheduleRow struct {
	// RunNumber is the driver assignment identifier.
	RunNumber string
	// Block is the vehicle assignment identifier.
	Block string
	// StartPlace is a stop id, depot code, or descriptive name.
	StartPlace string
	EndPlace   string
	// StartTime is the raw wall-clock value (HH:MM:SS, HH:MM, or plain
	// seconds); it is parsed lazily by StartSeconds.
	StartTime string
	EndTime   string
	// TripID references the GTFS trip; empty for deadheads and breaks.
	TripID string
	Depot  string

	VehicleClass string
	VehicleType  string

	StartLat *float64
	StartLon *float64
	EndLat   *float64
	EndLon   *float64

	// RouteShapeID references the GTFS shape, when known.
	RouteShapeID string

	Kind RowKind

	DutyID         string
	ShiftID        string
	RouteShortName string
	Headsign       string
}

// IsRevenue reports whether this row is a passenger-carrying trip. A row
// typed revenue but missing a trip reference is not revenue: it carries
// no service the reference timetable knows about, so it is accounted as
// non-revenue throughout (block revenue time, inference anchors).
func (r ScheduleRow) IsRevenue() bool {
	return r.Kind == KindRevenue && r.TripID != ""
}

// IsDeadhead reports whether this row is any type of non-revenue movement.
func (r ScheduleRow) IsDeadhead() bool {
	return r.Kind == KindPullOut || r.Kind == KindPullIn || r.Kind == KindDeadhead
}

// IsBreakOrRelief reports whether this row is a break or a relief.
func (r ScheduleRow) IsBreakOrRelief() bool {
	return r.Kind == KindBreak || r.Kind == KindRelief
}

// StartSeconds parses the start time as seconds past midnight.
func (r ScheduleRow) StartSeconds() (int, bool) {
	return ParseTimeSeconds(r.StartTime)
}

// EndSeconds parses the end time as seconds past midnight.
func (r ScheduleRow) EndSeconds() (int, bool) {
	return ParseTimeSeconds(r.EndTime)
}

// DurationSeconds returns end minus start when both parse and end is not
// before start; otherwise ok is false. Missing times mean "comparison not
// applicable", never zero.
func (r ScheduleRow) DurationSeconds() (int, bool) {
	start, okStart := r.StartSeconds()
	end, okEnd := r.EndSeconds()
	if !okStart || !okEnd || end < start {
		return 0, false
	}
	return end - start, true
}

// ParseTimeSeconds parses a wall-clock time string to seconds past
// midnight. Supported formats: plain seconds ("52200"), HH:MM:SS
// ("14:30:00"), and HH:MM ("14:30"). Hour values of 24 and above are
// valid and represent next-day times; they are preserved verbatim, not
// wrapped. An unparsable value yields ok=false, never an error.
func ParseTimeSeconds(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
		return secs, true
	}

	parts := strings.Split(s, ":")
	switch len(parts) {
	case 3:
		hours, err1 := strconv.Atoi(parts[0])
		minutes, err2 := strconv.Atoi(parts[1])
		seconds, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil ||
			hours < 0 || minutes < 0 || seconds < 0 {
			return 0, false
		}
		return hours*3600 + minutes*60 + seconds, true
	case 2:
		hours, err1 := strconv.Atoi(parts[0])
		minutes, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || hours < 0 || minutes < 0 {
			return 0, false
		}
		return hours*3600 + minutes*60, true
	default:
		return 0, false
	}
}

// FormatTimeSeconds converts seconds past midnight to HH:MM:SS. Values
// of 86400 and above format with hour fields of 24+ so that parser
// output round-trips exactly.
func FormatTimeSeconds(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
