package sim

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"solar_tracker/internal/model"
)

// Config holds every simulation parameter. It is built once per run from
// user overrides layered on the defaults and never mutated afterwards.
type Config struct {
	// Site
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Timezone  string  `json:"timezone" yaml:"timezone"`
	// StartTime is "2006-01-02 15:04:05" wall time in Timezone.
	StartTime string `json:"start_time" yaml:"start_time"`

	// Panel geometry
	PanelWidth  float64 `json:"panel_width" yaml:"panel_width"`
	PanelHeight float64 `json:"panel_height" yaml:"panel_height"`
	// SensorOffsets are the four corner sensor positions (x, y) in
	// panel-local meters relative to the panel center.
	SensorOffsets  [4][2]float64 `json:"sensor_offsets" yaml:"sensor_offsets"`
	InitialTilt    float64       `json:"initial_tilt" yaml:"initial_tilt"`
	InitialAzimuth float64       `json:"initial_azimuth" yaml:"initial_azimuth"`

	// Control
	MaxAngularVelocity float64              `json:"max_angular_velocity" yaml:"max_angular_velocity"` // degrees per step
	ControlPeriod      float64              `json:"control_period" yaml:"control_period"`             // seconds
	SimulationDuration float64              `json:"simulation_duration" yaml:"simulation_duration"`   // seconds
	Controller         model.ControllerType `json:"controller_type" yaml:"controller_type"`

	// Clouds (leading source; the two companions scale off these)
	CloudVelocity [2]float64 `json:"cloud_velocity" yaml:"cloud_velocity"` // m/s
	CloudSigma    float64    `json:"cloud_sigma" yaml:"cloud_sigma"`       // meters
	CloudDepth    float64    `json:"cloud_depth" yaml:"cloud_depth"`       // peak attenuation in [0,1)

	// Irradiance
	SkyDiffuse           float64 `json:"sky_diffuse_floor" yaml:"sky_diffuse_floor"`         // W/m²
	DirectIrradianceBase float64 `json:"direct_irradiance_base" yaml:"direct_irradiance_base"` // W/m²
	PanelEfficiency      float64 `json:"panel_efficiency" yaml:"panel_efficiency"`

	// Sensor noise
	NoiseStdDev float64 `json:"noise_stddev" yaml:"noise_stddev"` // W/m²
	// NoiseSeed seeds the sensor noise source; 0 picks a time-based seed.
	NoiseSeed int64 `json:"noise_seed" yaml:"noise_seed"`
}

// Default returns the documented default configuration: a 2×1 m panel at
// 35°N 120°E on a June morning, hybrid control over a four hour run.
func Default() Config {
	return Config{
		Latitude:  35.0,
		Longitude: 120.0,
		Timezone:  "Asia/Shanghai",
		StartTime: "2024-06-15 08:00:00",

		PanelWidth:  2.0,
		PanelHeight: 1.0,
		SensorOffsets: [4][2]float64{
			{-0.9, -0.45},
			{0.9, -0.45},
			{-0.9, 0.45},
			{0.9, 0.45},
		},
		InitialTilt:    30.0,
		InitialAzimuth: 180.0,

		MaxAngularVelocity: 2.0,
		ControlPeriod:      5.0,
		SimulationDuration: 4 * 3600,
		Controller:         model.ControllerHybrid,

		CloudVelocity: [2]float64{0.5, 0},
		CloudSigma:    200.0,
		CloudDepth:    0.9,

		SkyDiffuse:           50.0,
		DirectIrradianceBase: 1000.0,
		PanelEfficiency:      0.20,

		NoiseStdDev: 5.0,
	}
}

// ApplyOverrides decodes a partial parameter map (as delivered by the start
// endpoint or a preset) onto c. Unknown keys are rejected so typos fail fast.
func (c *Config) ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(overrides); err != nil {
		return fmt.Errorf("config overrides: %w", err)
	}
	return nil
}

// Validate checks the configuration before any step runs.
func (c *Config) Validate() error {
	if c.ControlPeriod <= 0 {
		return fmt.Errorf("control_period must be positive, got %g", c.ControlPeriod)
	}
	if c.SimulationDuration < 0 {
		return fmt.Errorf("simulation_duration must be non-negative, got %g", c.SimulationDuration)
	}
	if c.MaxAngularVelocity <= 0 {
		return fmt.Errorf("max_angular_velocity must be positive, got %g", c.MaxAngularVelocity)
	}
	if c.CloudSigma <= 0 {
		return fmt.Errorf("cloud_sigma must be positive, got %g", c.CloudSigma)
	}
	if c.CloudDepth < 0 || c.CloudDepth >= 1 {
		return fmt.Errorf("cloud_depth must be in [0,1), got %g", c.CloudDepth)
	}
	if c.NoiseStdDev < 0 {
		return fmt.Errorf("noise_stddev must be non-negative, got %g", c.NoiseStdDev)
	}
	if !c.Controller.Valid() {
		return fmt.Errorf("unknown controller_type %q", c.Controller)
	}
	if _, err := c.Start(); err != nil {
		return err
	}
	return nil
}

// Start returns the configured start timestamp in its timezone.
func (c *Config) Start() (time.Time, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("timezone: %w", err)
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", c.StartTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("start_time: %w", err)
	}
	return t, nil
}

// TotalSteps returns the number of control steps, inclusive of the t=0 step
// and the final duration-aligned step.
func (c *Config) TotalSteps() int {
	return int(c.SimulationDuration/c.ControlPeriod+1e-9) + 1
}
