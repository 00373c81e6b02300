package validation

// ErrorKind identifies what rule a validation error violated.
type ErrorKind int

const (
	ErrMissingTrip ErrorKind = iota
	ErrMissingStop
	ErrMissingShape
	ErrChronology
	ErrBlockDurationTooShort
	ErrBlockDurationTooLong
	ErrTripTooLong
	ErrLayoverTooShort
	ErrBreakTooShort
	ErrDutyTooLong
	ErrContinuousDrivingTooLong
)

func (k ErrorKind) String() string {
	switch k {
	case ErrMissingTrip:
		return "missing_trip"
	case ErrMissingStop:
		return "missing_stop"
	case ErrMissingShape:
		return "missing_shape"
	case ErrChronology:
		return "chronology"
	case ErrBlockDurationTooShort:
		return "block_duration_too_short"
	case ErrBlockDurationTooLong:
		return "block_duration_too_long"
	case ErrTripTooLong:
		return "trip_too_long"
	case ErrLayoverTooShort:
		return "layover_too_short"
	case ErrBreakTooShort:
		return "break_too_short"
	case ErrDutyTooLong:
		return "duty_too_long"
	case ErrContinuousDrivingTooLong:
		return "continuous_driving_too_long"
	default:
		return "unknown"
	}
}

// WarningKind identifies what a validation warning advises about.
type WarningKind int

const (
	WarnTripNotFound WarningKind = iota
	WarnStopNotFound
	WarnShapeNotFound
	WarnImplausibleCoordinates
	WarnLocationDiscontinuity
	WarnLargeGap
	WarnMissingPullOut
	WarnMissingPullIn
	WarnMissingStartCoordinates
	WarnMissingEndCoordinates
	WarnOrphanTrip
)

func (k WarningKind) String() string {
	switch k {
	case WarnTripNotFound:
		return "trip_not_found"
	case WarnStopNotFound:
		return "stop_not_found"
	case WarnShapeNotFound:
		return "shape_not_found"
	case WarnImplausibleCoordinates:
		return "implausible_coordinates"
	case WarnLocationDiscontinuity:
		return "location_discontinuity"
	case WarnLargeGap:
		return "large_gap"
	case WarnMissingPullOut:
		return "missing_pull_out"
	case WarnMissingPullIn:
		return "missing_pull_in"
	case WarnMissingStartCoordinates:
		return "missing_start_coordinates"
	case WarnMissingEndCoordinates:
		return "missing_end_coordinates"
	case WarnOrphanTrip:
		return "orphan_trip"
	default:
		return "unknown"
	}
}

// ErrorCategory groups errors by the checker that produced them.
type ErrorCategory int

const (
	CategoryIntegrity ErrorCategory = iota
	CategoryContinuity
	CategoryBusinessRule
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryContinuity:
		return "continuity"
	case CategoryBusinessRule:
		return "business_rule"
	default:
		return "integrity"
	}
}

// Error is one validation failure. It is a finding, not a Go error.
type Error struct {
	Kind     ErrorKind
	Category ErrorCategory
	Message  string
	Context  string
}

// Warning is one advisory finding.
type Warning struct {
	Kind    WarningKind
	Message string
	Context string
}

// Result aggregates one validation pass.
type Result struct {
	Errors   []Error
	Warnings []Warning

	RowsValidated    int
	BlocksValidated  int
	DutiesValidated  int

	// Truncated is set when the error budget stopped processing early.
	Truncated bool
}

// IsValid reports whether validation found no errors. Warnings never
// make a schedule invalid.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// ErrorCount returns the number of errors.
func (r Result) ErrorCount() int { return len(r.Errors) }

// WarningCount returns the number of warnings.
func (r Result) WarningCount() int { return len(r.Warnings) }

// ErrorsByCategory filters errors to one category.
func (r Result) ErrorsByCategory(category ErrorCategory) []Error {
	var out []Error
	for _, e := range r.Errors {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// WarningsByKind filters warnings to one kind.
func (r Result) WarningsByKind(kind WarningKind) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}
