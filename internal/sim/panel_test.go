package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanelSetOrientation(t *testing.T) {
	tests := []struct {
		name                 string
		tilt, azimuth        float64
		wantTilt, wantAzimth float64
	}{
		{"in range", 30, 180, 30, 180},
		{"tilt below zero", -5, 180, 0, 180},
		{"tilt above ninety", 95, 180, 90, 180},
		{"azimuth wraps up", 30, 370, 30, 10},
		{"azimuth wraps down", 30, -10, 30, 350},
		{"azimuth full turn", 30, 360, 30, 0},
		{"azimuth multiple turns", 30, 725, 30, 5},
	}

	cfg := Default()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPanel(&cfg)
			p.SetOrientation(tc.tilt, tc.azimuth)
			assert.InDelta(t, tc.wantTilt, p.Tilt(), 1e-9)
			assert.InDelta(t, tc.wantAzimth, p.Azimuth(), 1e-9)
		})
	}
}

func TestNewPanel_NormalizesInitialOrientation(t *testing.T) {
	cfg := Default()
	cfg.InitialTilt = 120
	cfg.InitialAzimuth = -90

	p := NewPanel(&cfg)
	assert.Equal(t, 90.0, p.Tilt())
	assert.Equal(t, 270.0, p.Azimuth())
}

func TestPanelState(t *testing.T) {
	cfg := Default()
	p := NewPanel(&cfg)

	state := p.State()
	assert.Equal(t, cfg.InitialTilt, state.Tilt)
	assert.Equal(t, cfg.InitialAzimuth, state.Azimuth)
	assert.Equal(t, cfg.SensorOffsets, state.Offsets)
}
