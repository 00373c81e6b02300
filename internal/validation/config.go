// Package validation checks schedules for referential integrity against
// a reference timetable, block continuity, and operational business
// rules. Findings are values collected into a result, never Go errors.
package validation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ComplianceLevel controls how reference misses are treated.
type ComplianceLevel int

const (
	// ComplianceStandard reports reference misses as warnings.
	ComplianceStandard ComplianceLevel = iota
	// ComplianceStrict reports reference misses as errors.
	ComplianceStrict
	// ComplianceLenient ignores reference misses entirely.
	ComplianceLenient
)

func (c ComplianceLevel) String() string {
	switch c {
	case ComplianceStrict:
		return "strict"
	case ComplianceLenient:
		return "lenient"
	default:
		return "standard"
	}
}

// ParseComplianceLevel maps a config string to a level, defaulting to
// standard.
func ParseComplianceLevel(s string) ComplianceLevel {
	switch s {
	case "strict":
		return ComplianceStrict
	case "lenient":
		return ComplianceLenient
	default:
		return ComplianceStandard
	}
}

// BusinessRules holds the operational thresholds validation enforces.
type BusinessRules struct {
	// MinLayoverSeconds is the minimum rest between consecutive revenue
	// trips.
	MinLayoverSeconds int `yaml:"min_layover_seconds"`

	// MaxTripDurationSeconds bounds a single revenue trip.
	MaxTripDurationSeconds int `yaml:"max_trip_duration_seconds"`

	// MaxDutyLengthSeconds bounds a driver's duty from start to end.
	MaxDutyLengthSeconds int `yaml:"max_duty_length_seconds"`

	// MaxContinuousDrivingSeconds bounds a piece of work.
	MaxContinuousDrivingSeconds int `yaml:"max_continuous_driving_seconds"`

	// MinBreakDurationSeconds is the shortest acceptable break.
	MinBreakDurationSeconds int `yaml:"min_break_duration_seconds"`

	// TimeToleranceSeconds is the allowed deviation from reference times.
	TimeToleranceSeconds int `yaml:"time_tolerance_seconds"`

	// MinBlockDurationSeconds and MaxBlockDurationSeconds bound a
	// block's span. A zero minimum disables the lower bound.
	MinBlockDurationSeconds int `yaml:"min_block_duration_seconds"`
	MaxBlockDurationSeconds int `yaml:"max_block_duration_seconds"`

	// FlagOrphanTrips warns on revenue rows with no block assignment.
	FlagOrphanTrips bool `yaml:"flag_orphan_trips"`

	// FlagMissingCoordinates warns on revenue rows without coordinates.
	FlagMissingCoordinates bool `yaml:"flag_missing_coordinates"`
}

// DefaultBusinessRules returns the standard thresholds.
func DefaultBusinessRules() BusinessRules {
	return BusinessRules{
		MinLayoverSeconds:           300,
		MaxTripDurationSeconds:      14400,
		MaxDutyLengthSeconds:        32400,
		MaxContinuousDrivingSeconds: 16200,
		MinBreakDurationSeconds:     1800,
		TimeToleranceSeconds:        60,
		MinBlockDurationSeconds:     0,
		MaxBlockDurationSeconds:     57600,
		FlagOrphanTrips:             true,
		FlagMissingCoordinates:      false,
	}
}

// StrictBusinessRules returns tightened thresholds.
func StrictBusinessRules() BusinessRules {
	return BusinessRules{
		MinLayoverSeconds:           600,
		MaxTripDurationSeconds:      10800,
		MaxDutyLengthSeconds:        28800,
		MaxContinuousDrivingSeconds: 14400,
		MinBreakDurationSeconds:     2700,
		TimeToleranceSeconds:        30,
		MinBlockDurationSeconds:     3600,
		MaxBlockDurationSeconds:     43200,
		FlagOrphanTrips:             true,
		FlagMissingCoordinates:      true,
	}
}

// LenientBusinessRules returns relaxed thresholds.
func LenientBusinessRules() BusinessRules {
	return BusinessRules{
		MinLayoverSeconds:           60,
		MaxTripDurationSeconds:      21600,
		MaxDutyLengthSeconds:        43200,
		MaxContinuousDrivingSeconds: 21600,
		MinBreakDurationSeconds:     900,
		TimeToleranceSeconds:        300,
		MinBlockDurationSeconds:     0,
		MaxBlockDurationSeconds:     86400,
		FlagOrphanTrips:             false,
		FlagMissingCoordinates:      false,
	}
}

// Config is the complete validation configuration.
type Config struct {
	Compliance ComplianceLevel `yaml:"-"`
	Rules      BusinessRules   `yaml:"rules"`

	ValidateBlockContinuity bool `yaml:"validate_block_continuity"`
	ValidateDutyConstraints bool `yaml:"validate_duty_constraints"`

	// GenerateWarnings toggles all warnings as a unit; errors are never
	// suppressed by it.
	GenerateWarnings bool `yaml:"generate_warnings"`

	// MaxErrors is the error budget; 0 means unlimited. Processing stops
	// as soon as the budget is reached and the result is marked
	// truncated.
	MaxErrors int `yaml:"max_errors"`
}

// NewConfig returns the standard configuration.
func NewConfig() Config {
	return Config{
		Compliance:              ComplianceStandard,
		Rules:                   DefaultBusinessRules(),
		ValidateBlockContinuity: true,
		ValidateDutyConstraints: true,
		GenerateWarnings:        true,
	}
}

// StrictConfig returns the strict configuration.
func StrictConfig() Config {
	return Config{
		Compliance:              ComplianceStrict,
		Rules:                   StrictBusinessRules(),
		ValidateBlockContinuity: true,
		ValidateDutyConstraints: true,
		GenerateWarnings:        true,
	}
}

// LenientConfig returns the lenient configuration: reference misses are
// ignored, structural checks are off, warnings are suppressed.
func LenientConfig() Config {
	return Config{
		Compliance:       ComplianceLenient,
		Rules:            LenientBusinessRules(),
		GenerateWarnings: false,
	}
}

// WithCompliance sets the compliance level.
func (c Config) WithCompliance(level ComplianceLevel) Config {
	c.Compliance = level
	return c
}

// WithRules sets the business rules.
func (c Config) WithRules(rules BusinessRules) Config {
	c.Rules = rules
	return c
}

// WithMaxErrors sets the error budget.
func (c Config) WithMaxErrors(max int) Config {
	c.MaxErrors = max
	return c
}

// WithWarnings toggles warning generation.
func (c Config) WithWarnings(enabled bool) Config {
	c.GenerateWarnings = enabled
	return c
}

// configFile is the on-disk YAML shape; the compliance level is a string
// there.
type configFile struct {
	Compliance string `yaml:"compliance"`
	Config     `yaml:",inline"`
}

// LoadConfig reads a validation configuration from a YAML file, starting
// from the standard defaults so partial files work.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading validation config: %w", err)
	}

	file := configFile{Compliance: "standard", Config: NewConfig()}
	if err := yaml.Unmarshal(b, &file); err != nil {
		return Config{}, fmt.Errorf("error parsing validation config: %w", err)
	}

	cfg := file.Config
	cfg.Compliance = ParseComplianceLevel(file.Compliance)
	return cfg, nil
}
