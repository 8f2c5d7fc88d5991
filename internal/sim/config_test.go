package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar_tracker/internal/model"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	start, err := cfg.Start()
	require.NoError(t, err)
	assert.Equal(t, 2024, start.Year())
	assert.Equal(t, "Asia/Shanghai", start.Location().String())
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero control period", func(c *Config) { c.ControlPeriod = 0 }},
		{"negative control period", func(c *Config) { c.ControlPeriod = -5 }},
		{"negative duration", func(c *Config) { c.SimulationDuration = -1 }},
		{"zero angular velocity", func(c *Config) { c.MaxAngularVelocity = 0 }},
		{"zero cloud sigma", func(c *Config) { c.CloudSigma = 0 }},
		{"cloud depth one", func(c *Config) { c.CloudDepth = 1 }},
		{"negative noise", func(c *Config) { c.NoiseStdDev = -1 }},
		{"unknown controller", func(c *Config) { c.Controller = "pid" }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"bad start time", func(c *Config) { c.StartTime = "June 15th" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigTotalSteps(t *testing.T) {
	cfg := Default()

	cfg.SimulationDuration = 0
	cfg.ControlPeriod = 5
	assert.Equal(t, 1, cfg.TotalSteps())

	cfg.SimulationDuration = 60
	assert.Equal(t, 13, cfg.TotalSteps())

	// Non-aligned duration: final partial interval yields no extra step.
	cfg.SimulationDuration = 12
	assert.Equal(t, 3, cfg.TotalSteps())

	cfg.SimulationDuration = 4 * 3600
	assert.Equal(t, 2881, cfg.TotalSteps())
}

func TestConfigApplyOverrides(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyOverrides(map[string]any{
		"latitude":            52.2,
		"controller_type":     "po",
		"simulation_duration": 600, // int, weakly typed
		"cloud_depth":         0.95,
	})
	require.NoError(t, err)

	assert.Equal(t, 52.2, cfg.Latitude)
	assert.Equal(t, model.ControllerPerturbObserve, cfg.Controller)
	assert.Equal(t, 600.0, cfg.SimulationDuration)
	assert.Equal(t, 0.95, cfg.CloudDepth)
	// Untouched fields keep their defaults.
	assert.Equal(t, 120.0, cfg.Longitude)
}

func TestConfigApplyOverrides_UnknownKey(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyOverrides(map[string]any{"lattitude": 52.2})
	assert.Error(t, err)
}

func TestConfigApplyOverrides_Empty(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyOverrides(nil))
	assert.Equal(t, Default(), cfg)
}
