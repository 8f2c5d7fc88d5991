package sim

import "math"

// Panel holds the tracker orientation and the fixed sensor mounting offsets.
// SetOrientation is the only mutator; the engine calls it once per step.
type Panel struct {
	tilt    float64 // degrees, clamped to [0,90]
	azimuth float64 // degrees, wrapped to [0,360), 180 = south
	offsets [4][2]float64
}

// PanelState is a read-only orientation snapshot.
type PanelState struct {
	Tilt    float64
	Azimuth float64
	Offsets [4][2]float64
}

func NewPanel(cfg *Config) *Panel {
	p := &Panel{offsets: cfg.SensorOffsets}
	p.SetOrientation(cfg.InitialTilt, cfg.InitialAzimuth)
	return p
}

// SetOrientation clamps tilt into [0,90] and wraps azimuth into [0,360).
func (p *Panel) SetOrientation(tilt, azimuth float64) {
	if tilt < 0 {
		tilt = 0
	} else if tilt > 90 {
		tilt = 90
	}
	azimuth = math.Mod(azimuth, 360)
	if azimuth < 0 {
		azimuth += 360
	}
	p.tilt = tilt
	p.azimuth = azimuth
}

func (p *Panel) Tilt() float64    { return p.tilt }
func (p *Panel) Azimuth() float64 { return p.azimuth }

// State returns the current orientation and sensor offsets.
func (p *Panel) State() PanelState {
	return PanelState{Tilt: p.tilt, Azimuth: p.azimuth, Offsets: p.offsets}
}
