package models

import "sort"

// Duty is a driver work assignment: every row worked by one driver over a
// service day, possibly spanning several blocks with breaks and reliefs
// in between.
type Duty struct {
	DutyID string
	Rows   []ScheduleRow

	// RunNumber and Depot come from the first added row carrying a value.
	RunNumber string
	Depot     string

	// SignOnTime and SignOffTime override the row-derived start/end when
	// set and parsable. The driver may report before the first trip and
	// sign off after the last one.
	SignOnTime  string
	SignOffTime string
}

// PieceOfWork is a continuous driving segment within a duty: revenue
// trips and deadheads with no break or relief in between.
type PieceOfWork struct {
	Rows []ScheduleRow

	startSeconds int
	hasStart     bool
	endSeconds   int
	hasEnd       bool
}

// StartSeconds returns the piece's start, taken from its first row.
func (p PieceOfWork) StartSeconds() (int, bool) {
	return p.startSeconds, p.hasStart
}

// EndSeconds returns the piece's end: the latest end time seen so far.
// Rows whose end time would move it backwards do not shrink it.
func (p PieceOfWork) EndSeconds() (int, bool) {
	return p.endSeconds, p.hasEnd
}

// DurationSeconds returns the piece's span when both endpoints are known.
func (p PieceOfWork) DurationSeconds() (int, bool) {
	if !p.hasStart || !p.hasEnd || p.endSeconds < p.startSeconds {
		return 0, false
	}
	return p.endSeconds - p.startSeconds, true
}

// NewDuty creates an empty duty with the given id.
func NewDuty(dutyID string) *Duty {
	return &Duty{DutyID: dutyID}
}

// AddRow appends a copy of the row. The first row carrying a run number
// or depot pins that attribute for the whole duty.
func (d *Duty) AddRow(row ScheduleRow) {
	if d.RunNumber == "" {
		d.RunNumber = row.RunNumber
	}
	if d.Depot == "" {
		d.Depot = row.Depot
	}
	d.Rows = append(d.Rows, cloneRow(row))
}

// SortRowsByTime orders rows ascending by parsed start time, with
// unparsable starts sorting as zero. Stable for equal keys.
func (d *Duty) SortRowsByTime() {
	sort.SliceStable(d.Rows, func(i, j int) bool {
		ti, _ := d.Rows[i].StartSeconds()
		tj, _ := d.Rows[j].StartSeconds()
		return ti < tj
	})
}

// Len returns the number of rows in the duty.
func (d *Duty) Len() int {
	return len(d.Rows)
}

// StartSeconds returns the sign-on time when set and parsable, otherwise
// the earliest row start.
func (d *Duty) StartSeconds() (int, bool) {
	if d.SignOnTime != "" {
		if t, ok := ParseTimeSeconds(d.SignOnTime); ok {
			return t, true
		}
	}
	best, found := 0, false
	for _, row := range d.Rows {
		if t, ok := row.StartSeconds(); ok && (!found || t < best) {
			best, found = t, true
		}
	}
	return best, found
}

// EndSeconds returns the sign-off time when set and parsable, otherwise
// the latest row end.
func (d *Duty) EndSeconds() (int, bool) {
	if d.SignOffTime != "" {
		if t, ok := ParseTimeSeconds(d.SignOffTime); ok {
			return t, true
		}
	}
	best, found := 0, false
	for _, row := range d.Rows {
		if t, ok := row.EndSeconds(); ok && (!found || t > best) {
			best, found = t, true
		}
	}
	return best, found
}

// DurationSeconds returns the duty's span from start to end.
func (d *Duty) DurationSeconds() (int, bool) {
	start, okStart := d.StartSeconds()
	end, okEnd := d.EndSeconds()
	if !okStart || !okEnd || end < start {
		return 0, false
	}
	return end - start, true
}

// DrivingTimeSeconds sums the durations of revenue and deadhead rows.
func (d *Duty) DrivingTimeSeconds() int {
	total := 0
	for _, row := range d.Rows {
		if !row.IsRevenue() && !row.IsDeadhead() {
			continue
		}
		if dur, ok := row.DurationSeconds(); ok {
			total += dur
		}
	}
	return total
}

// BreakTimeSeconds sums the durations of break and relief rows.
func (d *Duty) BreakTimeSeconds() int {
	total := 0
	for _, row := range d.Rows {
		if !row.IsBreakOrRelief() {
			continue
		}
		if dur, ok := row.DurationSeconds(); ok {
			total += dur
		}
	}
	return total
}

// Breaks returns the break rows in duty order.
func (d *Duty) Breaks() []ScheduleRow {
	var breaks []ScheduleRow
	for _, row := range d.Rows {
		if row.Kind == KindBreak {
			breaks = append(breaks, row)
		}
	}
	return breaks
}

// Reliefs returns the relief rows in duty order.
func (d *Duty) Reliefs() []ScheduleRow {
	var reliefs []ScheduleRow
	for _, row := range d.Rows {
		if row.Kind == KindRelief {
			reliefs = append(reliefs, row)
		}
	}
	return reliefs
}

// BlockIDs returns the sorted unique block ids this duty works on.
func (d *Duty) BlockIDs() []string {
	return sortedUnique(d.Rows, func(r ScheduleRow) string { return r.Block })
}

// IsSplitDuty reports whether the duty contains an off-duty gap of at
// least minGapSeconds between consecutive rows. The threshold is the
// caller's; nothing about it is stored on the duty.
func (d *Duty) IsSplitDuty(minGapSeconds int) bool {
	for i := 0; i+1 < len(d.Rows); i++ {
		end, okEnd := d.Rows[i].EndSeconds()
		start, okStart := d.Rows[i+1].StartSeconds()
		if okEnd && okStart && start > end && start-end >= minGapSeconds {
			return true
		}
	}
	return false
}

// PiecesOfWork segments the duty into continuous driving pieces. A break
// or relief row closes the current piece; the next non-break row opens a
// new one. A piece's end time only ever moves forward as rows accumulate,
// so an out-of-order short row cannot shrink an established piece.
func (d *Duty) PiecesOfWork() []PieceOfWork {
	var pieces []PieceOfWork
	var current *PieceOfWork

	for _, row := range d.Rows {
		if row.IsBreakOrRelief() {
			if current != nil {
				pieces = append(pieces, *current)
				current = nil
			}
			continue
		}

		if current == nil {
			piece := PieceOfWork{Rows: []ScheduleRow{cloneRow(row)}}
			piece.startSeconds, piece.hasStart = row.StartSeconds()
			piece.endSeconds, piece.hasEnd = row.EndSeconds()
			current = &piece
			continue
		}

		current.Rows = append(current.Rows, cloneRow(row))
		if end, ok := row.EndSeconds(); ok && (!current.hasEnd || end > current.endSeconds) {
			current.endSeconds, current.hasEnd = end, true
		}
	}

	if current != nil {
		pieces = append(pieces, *current)
	}
	return pieces
}

// ToShift projects the duty into a Shift: sign-on/off plus its breaks.
// Breaks default to unpaid; whether a break is paid is a payroll rule,
// not schedule data.
func (d *Duty) ToShift() Shift {
	shift := Shift{
		ShiftID: d.DutyID,
		DutyID:  d.DutyID,
		Depot:   d.Depot,
	}
	if on, ok := d.StartSeconds(); ok {
		shift.SignOnSeconds = &on
	}
	if off, ok := d.EndSeconds(); ok {
		shift.SignOffSeconds = &off
	}
	for _, row := range d.Breaks() {
		start, okStart := row.StartSeconds()
		end, okEnd := row.EndSeconds()
		if !okStart || !okEnd {
			continue
		}
		shift.AddBreak(NewBreak(start, end).WithLocation(row.StartPlace))
	}
	return shift
}

// DutySummary carries derived statistics for one duty.
type DutySummary struct {
	DutyID             string
	TotalRows          int
	DurationSeconds    int
	HasDuration        bool
	DrivingTimeSeconds int
	BreakTimeSeconds   int
	PiecesOfWork       int
	BlocksWorked       int
}

// Summary computes the duty's statistics.
func (d *Duty) Summary() DutySummary {
	duration, hasDuration := d.DurationSeconds()
	return DutySummary{
		DutyID:             d.DutyID,
		TotalRows:          len(d.Rows),
		DurationSeconds:    duration,
		HasDuration:        hasDuration,
		DrivingTimeSeconds: d.DrivingTimeSeconds(),
		BreakTimeSeconds:   d.BreakTimeSeconds(),
		PiecesOfWork:       len(d.PiecesOfWork()),
		BlocksWorked:       len(d.BlockIDs()),
	}
}
