package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := NewConfig()
	assert.Equal(t, ComplianceStandard, config.Compliance)
	assert.Equal(t, 300, config.Rules.MinLayoverSeconds)
	assert.True(t, config.ValidateBlockContinuity)
	assert.True(t, config.GenerateWarnings)
	assert.Equal(t, 0, config.MaxErrors)
}

func TestStrictRulesAreTighter(t *testing.T) {
	strict := StrictBusinessRules()
	standard := DefaultBusinessRules()
	assert.Greater(t, strict.MinLayoverSeconds, standard.MinLayoverSeconds)
	assert.Less(t, strict.MaxDutyLengthSeconds, standard.MaxDutyLengthSeconds)
	assert.True(t, strict.FlagMissingCoordinates)
}

func TestLenientRulesAreLooser(t *testing.T) {
	lenient := LenientBusinessRules()
	standard := DefaultBusinessRules()
	assert.Less(t, lenient.MinLayoverSeconds, standard.MinLayoverSeconds)
	assert.Greater(t, lenient.MaxDutyLengthSeconds, standard.MaxDutyLengthSeconds)
	assert.False(t, lenient.FlagOrphanTrips)
}

func TestLenientConfigSuppressesEverything(t *testing.T) {
	config := LenientConfig()
	assert.Equal(t, ComplianceLenient, config.Compliance)
	assert.False(t, config.ValidateBlockContinuity)
	assert.False(t, config.ValidateDutyConstraints)
	assert.False(t, config.GenerateWarnings)
}

func TestConfigBuilders(t *testing.T) {
	config := NewConfig().
		WithCompliance(ComplianceStrict).
		WithMaxErrors(5).
		WithWarnings(false)

	assert.Equal(t, ComplianceStrict, config.Compliance)
	assert.Equal(t, 5, config.MaxErrors)
	assert.False(t, config.GenerateWarnings)
}

func TestParseComplianceLevel(t *testing.T) {
	assert.Equal(t, ComplianceStrict, ParseComplianceLevel("strict"))
	assert.Equal(t, ComplianceLenient, ParseComplianceLevel("lenient"))
	assert.Equal(t, ComplianceStandard, ParseComplianceLevel("standard"))
	assert.Equal(t, ComplianceStandard, ParseComplianceLevel(""))
	assert.Equal(t, ComplianceStandard, ParseComplianceLevel("bogus"))
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "validation.yaml")
	content := []byte(`compliance: strict
max_errors: 10
generate_warnings: false
rules:
  min_layover_seconds: 120
  max_block_duration_seconds: 50000
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ComplianceStrict, config.Compliance)
	assert.Equal(t, 10, config.MaxErrors)
	assert.False(t, config.GenerateWarnings)
	assert.Equal(t, 120, config.Rules.MinLayoverSeconds)
	assert.Equal(t, 50000, config.Rules.MaxBlockDurationSeconds)
	// Unset fields keep their defaults.
	assert.Equal(t, 14400, config.Rules.MaxTripDurationSeconds)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
