package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensorReadings_SeededReproducibility(t *testing.T) {
	cfg := Default()
	cfg.NoiseSeed = 42

	sun := newTestSun(t, cfg)
	a := NewSensorModel(&cfg, sun)
	b := NewSensorModel(&cfg, sun)

	panelA, panelB := NewPanel(&cfg), NewPanel(&cfg)
	cloudsA, cloudsB := NewCloudField(&cfg), NewCloudField(&cfg)

	for i := 0; i < 20; i++ {
		elapsed := float64(i) * cfg.ControlPeriod
		assert.Equal(t, a.Readings(panelA, elapsed, cloudsA), b.Readings(panelB, elapsed, cloudsB))
		cloudsA.Advance(cfg.ControlPeriod)
		cloudsB.Advance(cfg.ControlPeriod)
	}
}

func TestSensorReadings_FlooredAtZero(t *testing.T) {
	cfg := Default()
	cfg.NoiseSeed = 7
	cfg.SkyDiffuse = 0
	cfg.DirectIrradianceBase = 0
	cfg.NoiseStdDev = 50

	sun := newTestSun(t, cfg)
	m := NewSensorModel(&cfg, sun)
	panel := NewPanel(&cfg)
	clouds := NewCloudField(&cfg)

	floored := 0
	for i := 0; i < 50; i++ {
		readings := m.Readings(panel, float64(i)*cfg.ControlPeriod, clouds)
		for _, r := range readings {
			require.GreaterOrEqual(t, r, 0.0)
			if r == 0 {
				floored++
			}
		}
	}
	// With zero signal and pure noise, roughly half the draws hit the floor.
	assert.Positive(t, floored)
}

func TestSensorReadings_NoiselessComposition(t *testing.T) {
	cfg := Default()
	cfg.NoiseStdDev = 0
	cfg.NoiseSeed = 1

	sun := newTestSun(t, cfg)
	m := NewSensorModel(&cfg, sun)
	panel := NewPanel(&cfg)
	clouds := NewCloudField(&cfg)

	direct := sun.DirectOnPanel(0, panel.Tilt(), panel.Azimuth())
	readings := m.Readings(panel, 0, clouds)

	for i, off := range panel.State().Offsets {
		want := clouds.Attenuation(off[0], off[1])*direct + cfg.SkyDiffuse
		assert.InDelta(t, want, readings[i], 1e-9)
	}
}

func TestSensorReadings_CloudShadowSkewsField(t *testing.T) {
	cfg := Default()
	cfg.NoiseStdDev = 0
	cfg.NoiseSeed = 1

	sun := newTestSun(t, cfg)
	m := NewSensorModel(&cfg, sun)
	panel := NewPanel(&cfg)

	// A deep narrow cloud parked over the two left sensors.
	clouds := &CloudField{sources: []CloudSource{
		{Center: [2]float64{-0.9, 0}, Sigma: 0.5, Depth: 0.9},
	}}

	r := m.Readings(panel, 0, clouds)
	assert.Less(t, r[0], r[1])
	assert.Less(t, r[2], r[3])
}
