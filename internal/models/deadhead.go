package models

import "rosterkit.transitops.org/internal/utils"

// DeadheadKind identifies the type of non-revenue movement.
type DeadheadKind int

const (
	// DeadheadPullOut is a depot-to-first-stop movement.
	DeadheadPullOut DeadheadKind = iota
	// DeadheadPullIn is a last-stop-to-depot movement.
	DeadheadPullIn
	// DeadheadInterlining is a between-trips repositioning movement.
	DeadheadInterlining
)

func (k DeadheadKind) String() string {
	switch k {
	case DeadheadPullIn:
		return "pull_in"
	case DeadheadInterlining:
		return "interlining"
	default:
		return "pull_out"
	}
}

// Deadhead is one non-revenue vehicle movement, either taken directly
// from the schedule or inferred from its gaps.
type Deadhead struct {
	Kind DeadheadKind

	// FromLocation and ToLocation are stop ids, depot codes, or
	// descriptive names.
	FromLocation string
	ToLocation   string

	// StartSeconds and EndSeconds are nil when unknown.
	StartSeconds *int
	EndSeconds   *int

	BlockID string

	// FromTripID and ToTripID name the connecting revenue trips, when
	// interlining.
	FromTripID string
	ToTripID   string

	// DistanceMeters is the estimated travel distance, nil when no
	// estimate was made.
	DistanceMeters *float64

	FromLat *float64
	FromLon *float64
	ToLat   *float64
	ToLon   *float64

	// IsInferred marks movements reconstructed from the schedule rather
	// than read out of it.
	IsInferred bool
}

// NewPullOut creates a pull-out deadhead from a depot to a first stop.
func NewPullOut(depot, firstStop string) Deadhead {
	return Deadhead{Kind: DeadheadPullOut, FromLocation: depot, ToLocation: firstStop}
}

// NewPullIn creates a pull-in deadhead from a last stop to a depot.
func NewPullIn(lastStop, depot string) Deadhead {
	return Deadhead{Kind: DeadheadPullIn, FromLocation: lastStop, ToLocation: depot}
}

// NewInterlining creates an interlining deadhead between two stops.
func NewInterlining(fromStop, toStop string) Deadhead {
	return Deadhead{Kind: DeadheadInterlining, FromLocation: fromStop, ToLocation: toStop}
}

// WithBlock sets the owning block id.
func (d Deadhead) WithBlock(blockID string) Deadhead {
	d.BlockID = blockID
	return d
}

// WithTimes sets both endpoint times.
func (d Deadhead) WithTimes(start, end int) Deadhead {
	d.StartSeconds = &start
	d.EndSeconds = &end
	return d
}

// WithTrips sets the connecting trip ids; "" leaves a side unset.
func (d Deadhead) WithTrips(fromTrip, toTrip string) Deadhead {
	d.FromTripID = fromTrip
	d.ToTripID = toTrip
	return d
}

// WithDistance sets the estimated distance in meters.
func (d Deadhead) WithDistance(meters float64) Deadhead {
	d.DistanceMeters = &meters
	return d
}

// WithCoordinates sets both endpoint coordinates.
func (d Deadhead) WithCoordinates(fromLat, fromLon, toLat, toLon float64) Deadhead {
	d.FromLat = &fromLat
	d.FromLon = &fromLon
	d.ToLat = &toLat
	d.ToLon = &toLon
	return d
}

// Inferred marks the deadhead as reconstructed rather than explicit.
func (d Deadhead) Inferred() Deadhead {
	d.IsInferred = true
	return d
}

// DurationSeconds returns the movement's span when both times are known.
func (d Deadhead) DurationSeconds() (int, bool) {
	if d.StartSeconds == nil || d.EndSeconds == nil || *d.EndSeconds < *d.StartSeconds {
		return 0, false
	}
	return *d.EndSeconds - *d.StartSeconds, true
}

// CalculateDistance returns the crow-flies distance between the endpoint
// coordinates, when all four are known.
func (d Deadhead) CalculateDistance() (float64, bool) {
	if d.FromLat == nil || d.FromLon == nil || d.ToLat == nil || d.ToLon == nil {
		return 0, false
	}
	return utils.HaversineMeters(*d.FromLat, *d.FromLon, *d.ToLat, *d.ToLon), true
}

// IsDepotMovement reports whether the deadhead starts or ends at a depot.
func (d Deadhead) IsDepotMovement() bool {
	return d.Kind == DeadheadPullOut || d.Kind == DeadheadPullIn
}
