package sim

import "math"

// CloudSource is one drifting Gaussian attenuation source on the ground
// plane. Depth is the peak fractional light blockage at the center.
type CloudSource struct {
	Center   [2]float64 // meters
	Velocity [2]float64 // m/s
	Sigma    float64    // meters
	Depth    float64    // [0,1)
}

// CloudField holds the moving attenuation sources for one run. Sources move
// independently and indefinitely; they never merge or despawn.
type CloudField struct {
	sources []CloudSource
}

// NewCloudField creates the three drifting sources. The leading cloud takes
// the configured velocity, spread and depth; the two companions start
// further upwind with their own parameters so the field stays non-uniform.
func NewCloudField(cfg *Config) *CloudField {
	return &CloudField{
		sources: []CloudSource{
			{Center: [2]float64{0, -500}, Velocity: cfg.CloudVelocity, Sigma: cfg.CloudSigma, Depth: cfg.CloudDepth},
			{Center: [2]float64{300, -800}, Velocity: [2]float64{0.3, 0.1}, Sigma: 150, Depth: 0.7},
			{Center: [2]float64{-200, -1200}, Velocity: [2]float64{0.4, -0.1}, Sigma: 250, Depth: 0.8},
		},
	}
}

// Attenuation returns the multiplicative light factor in (0,1] at a ground
// point. Attenuations compound across sources, so overlapping clouds darken
// a point more than any single cloud alone.
func (f *CloudField) Attenuation(x, y float64) float64 {
	total := 1.0
	for _, c := range f.sources {
		d := math.Hypot(x-c.Center[0], y-c.Center[1])
		total *= 1 - c.Depth*math.Exp(-0.5*(d/c.Sigma)*(d/c.Sigma))
	}
	return total
}

// Advance moves every source's center by velocity·dt.
func (f *CloudField) Advance(dt float64) {
	for i := range f.sources {
		f.sources[i].Center[0] += f.sources[i].Velocity[0] * dt
		f.sources[i].Center[1] += f.sources[i].Velocity[1] * dt
	}
}

// Sources returns a copy of the current sources.
func (f *CloudField) Sources() []CloudSource {
	out := make([]CloudSource, len(f.sources))
	copy(out, f.sources)
	return out
}
