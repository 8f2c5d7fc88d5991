package sim

import (
	"math/rand"
	"time"
)

// SensorModel produces the four corner sensor readings: cloud-attenuated
// direct irradiance plus the diffuse floor plus Gaussian noise, floored at
// zero.
type SensorModel struct {
	sun     *SunModel
	diffuse float64
	stddev  float64
	rng     *rand.Rand
}

// NewSensorModel builds the sensor model. A zero noise seed picks a
// time-based seed, making readings non-reproducible across runs.
func NewSensorModel(cfg *Config, sun *SunModel) *SensorModel {
	seed := cfg.NoiseSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SensorModel{
		sun:     sun,
		diffuse: cfg.SkyDiffuse,
		stddev:  cfg.NoiseStdDev,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Readings computes the four sensor values at the panel's current
// orientation. Direct irradiance is evaluated once and shared across the
// sensors; only the cloud attenuation term varies per sensor position.
func (m *SensorModel) Readings(panel *Panel, elapsed float64, clouds *CloudField) [4]float64 {
	direct := m.sun.DirectOnPanel(elapsed, panel.Tilt(), panel.Azimuth())

	var readings [4]float64
	for i, off := range panel.State().Offsets {
		att := clouds.Attenuation(off[0], off[1])
		r := att*direct + m.diffuse + m.rng.NormFloat64()*m.stddev
		if r < 0 {
			r = 0
		}
		readings[i] = r
	}
	return readings
}
