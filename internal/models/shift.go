package models

import "sort"

// Shift is a driver's complete on-duty period from sign-on to sign-off,
// with its break periods. Unlike a Duty it carries no rows; it is the
// payroll-facing projection.
type Shift struct {
	ShiftID string
	DutyID  string

	// SignOnSeconds and SignOffSeconds are nil when unknown.
	SignOnSeconds  *int
	SignOffSeconds *int

	Breaks []Break
	Depot  string
}

// Break is one break period within a shift.
type Break struct {
	StartSeconds int
	EndSeconds   int
	Location     string
	IsPaid       bool
}

// NewBreak creates an unpaid break.
func NewBreak(start, end int) Break {
	return Break{StartSeconds: start, EndSeconds: end}
}

// NewPaidBreak creates a paid break.
func NewPaidBreak(start, end int) Break {
	return Break{StartSeconds: start, EndSeconds: end, IsPaid: true}
}

// WithLocation sets where the break is taken.
func (b Break) WithLocation(location string) Break {
	b.Location = location
	return b
}

// DurationSeconds returns the break length, saturating at zero when the
// endpoints are inverted.
func (b Break) DurationSeconds() int {
	if b.EndSeconds < b.StartSeconds {
		return 0
	}
	return b.EndSeconds - b.StartSeconds
}

// NewShift creates a shift with no times or breaks.
func NewShift(shiftID, dutyID string) Shift {
	return Shift{ShiftID: shiftID, DutyID: dutyID}
}

// AddBreak appends a break to the shift.
func (s *Shift) AddBreak(b Break) {
	s.Breaks = append(s.Breaks, b)
}

// TotalDurationSeconds returns sign-on to sign-off when both are known.
func (s Shift) TotalDurationSeconds() (int, bool) {
	if s.SignOnSeconds == nil || s.SignOffSeconds == nil || *s.SignOffSeconds < *s.SignOnSeconds {
		return 0, false
	}
	return *s.SignOffSeconds - *s.SignOnSeconds, true
}

// PaidTimeSeconds returns the total duration minus unpaid break time,
// saturating at zero.
func (s Shift) PaidTimeSeconds() (int, bool) {
	total, ok := s.TotalDurationSeconds()
	if !ok {
		return 0, false
	}
	paid := total - s.UnpaidBreakTimeSeconds()
	if paid < 0 {
		paid = 0
	}
	return paid, true
}

// TotalBreakTimeSeconds sums all break durations.
func (s Shift) TotalBreakTimeSeconds() int {
	total := 0
	for _, b := range s.Breaks {
		total += b.DurationSeconds()
	}
	return total
}

// PaidBreakTimeSeconds sums the durations of paid breaks.
func (s Shift) PaidBreakTimeSeconds() int {
	total := 0
	for _, b := range s.Breaks {
		if b.IsPaid {
			total += b.DurationSeconds()
		}
	}
	return total
}

// UnpaidBreakTimeSeconds sums the durations of unpaid breaks.
func (s Shift) UnpaidBreakTimeSeconds() int {
	total := 0
	for _, b := range s.Breaks {
		if !b.IsPaid {
			total += b.DurationSeconds()
		}
	}
	return total
}

// BreaksValid reports whether every break falls inside the shift bounds
// (when both bounds are known) and no two breaks overlap.
func (s Shift) BreaksValid() bool {
	if len(s.Breaks) == 0 {
		return true
	}

	if s.SignOnSeconds != nil && s.SignOffSeconds != nil {
		for _, b := range s.Breaks {
			if b.StartSeconds < *s.SignOnSeconds || b.EndSeconds > *s.SignOffSeconds {
				return false
			}
		}
	}

	sorted := make([]Break, len(s.Breaks))
	copy(sorted, s.Breaks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartSeconds < sorted[j].StartSeconds
	})
	for i := 0; i+1 < len(sorted); i++ {
		if sorted[i].EndSeconds > sorted[i+1].StartSeconds {
			return false
		}
	}
	return true
}

// ShiftSummary carries derived statistics for one shift.
type ShiftSummary struct {
	ShiftID               string
	TotalDurationSeconds  int
	HasDuration           bool
	PaidTimeSeconds       int
	HasPaidTime           bool
	BreakCount            int
	TotalBreakTimeSeconds int
}

// Summary computes the shift's statistics.
func (s Shift) Summary() ShiftSummary {
	duration, hasDuration := s.TotalDurationSeconds()
	paid, hasPaid := s.PaidTimeSeconds()
	return ShiftSummary{
		ShiftID:               s.ShiftID,
		TotalDurationSeconds:  duration,
		HasDuration:           hasDuration,
		PaidTimeSeconds:       paid,
		HasPaidTime:           hasPaid,
		BreakCount:            len(s.Breaks),
		TotalBreakTimeSeconds: s.TotalBreakTimeSeconds(),
	}
}
