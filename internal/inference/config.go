// Package inference reconstructs the deadhead movements a schedule
// leaves implicit: depot pull-outs, pull-ins, and interlining moves
// between revenue trips.
package inference

const (
	// DefaultAverageSpeedMps is roughly 30 km/h, a city-traffic estimate.
	DefaultAverageSpeedMps = 8.33

	// DefaultMinGapSeconds is the smallest inter-trip time difference
	// worth treating as a deadhead opportunity.
	DefaultMinGapSeconds = 60

	// FallbackDurationSeconds is used when no coordinates are available
	// to estimate a movement's travel time.
	FallbackDurationSeconds = 900
)

// Config controls deadhead inference.
type Config struct {
	// DepotLocations maps a stop id to the depot code it hosts. It lets
	// duration estimation resolve a depot's coordinates through its stop.
	DepotLocations map[string]string

	// DefaultDepot is used when a block specifies no depot. Empty means
	// no fallback; blocks without a depot are reported incomplete.
	DefaultDepot string

	// AverageSpeedMps converts estimated distances to durations.
	AverageSpeedMps float64

	// MinGapSeconds is the gap below which consecutive trips are treated
	// as continuous.
	MinGapSeconds int

	// InferInterlining toggles between-trip deadhead inference.
	InferInterlining bool
}

// NewConfig returns the default inference configuration.
func NewConfig() Config {
	return Config{
		DepotLocations:   make(map[string]string),
		AverageSpeedMps:  DefaultAverageSpeedMps,
		MinGapSeconds:    DefaultMinGapSeconds,
		InferInterlining: true,
	}
}

// AddDepot registers a stop as the location of a depot.
func (c Config) AddDepot(stopID, depotCode string) Config {
	if c.DepotLocations == nil {
		c.DepotLocations = make(map[string]string)
	}
	c.DepotLocations[stopID] = depotCode
	return c
}

// WithDefaultDepot sets the fallback depot code.
func (c Config) WithDefaultDepot(depot string) Config {
	c.DefaultDepot = depot
	return c
}

// WithAverageSpeed sets the speed used for duration estimates.
func (c Config) WithAverageSpeed(mps float64) Config {
	c.AverageSpeedMps = mps
	return c
}

// WithMinGap sets the minimum deadhead-worthy gap.
func (c Config) WithMinGap(seconds int) Config {
	c.MinGapSeconds = seconds
	return c
}

// WithInterlining toggles interlining inference.
func (c Config) WithInterlining(enabled bool) Config {
	c.InferInterlining = enabled
	return c
}
