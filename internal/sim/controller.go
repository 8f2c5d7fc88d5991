package sim

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"solar_tracker/internal/model"
)

// Controller turns sensor readings and panel/sun state into an orientation
// correction. Both deltas are bounded by the configured maximum angular
// velocity and applied additively by the engine.
type Controller interface {
	ComputeAction(readings [4]float64, state PanelState, sunElev, sunAzi float64) (deltaAzimuth, deltaTilt float64)
}

// NewController builds the variant selected in the config.
func NewController(cfg *Config) (Controller, error) {
	switch cfg.Controller {
	case model.ControllerDifferential:
		return NewDifferentialController(cfg.MaxAngularVelocity), nil
	case model.ControllerPerturbObserve:
		return NewPerturbObserveController(), nil
	case model.ControllerOptimal:
		return NewOptimalController(cfg.MaxAngularVelocity), nil
	case model.ControllerHybrid:
		return NewHybridController(cfg.MaxAngularVelocity), nil
	default:
		return nil, fmt.Errorf("unknown controller_type %q", cfg.Controller)
	}
}

// PID gains shared by both axes of the differential law.
const (
	diffGainP = 0.1
	diffGainI = 0.01
	diffGainD = 0.05
)

// DifferentialController steers by the east-west and north-south sensor
// imbalance through an independent PID law per axis. The integral term
// accumulates every step without anti-windup.
type DifferentialController struct {
	maxVelocity float64

	integralAzi   float64
	integralTilt  float64
	prevErrorAzi  float64
	prevErrorTilt float64
}

func NewDifferentialController(maxVelocity float64) *DifferentialController {
	return &DifferentialController{maxVelocity: maxVelocity}
}

func (c *DifferentialController) ComputeAction(readings [4]float64, _ PanelState, _, _ float64) (float64, float64) {
	left := readings[0] + readings[2]
	right := readings[1] + readings[3]
	top := readings[2] + readings[3]
	bottom := readings[0] + readings[1]

	errAzi := left - right
	errTilt := top - bottom

	c.integralAzi += diffGainI * errAzi
	dAzi := diffGainP*errAzi + c.integralAzi + diffGainD*(errAzi-c.prevErrorAzi)
	c.prevErrorAzi = errAzi

	c.integralTilt += diffGainI * errTilt
	dTilt := diffGainP*errTilt + c.integralTilt + diffGainD*(errTilt-c.prevErrorTilt)
	c.prevErrorTilt = errTilt

	return clamp(dAzi, -c.maxVelocity, c.maxVelocity),
		clamp(dTilt, -c.maxVelocity, c.maxVelocity)
}

// perturbMagnitude is the fixed step per axis, degrees. The output is never
// proportional to the error.
const perturbMagnitude = 0.5

// PerturbObserveController nudges each axis by a fixed step, keeping the
// direction while total irradiance improves and flipping one axis at a time
// (alternating by step parity) when it degrades.
type PerturbObserveController struct {
	prevTotal     float64
	aziDirection  float64
	tiltDirection float64
	count         int
}

func NewPerturbObserveController() *PerturbObserveController {
	return &PerturbObserveController{aziDirection: 1, tiltDirection: 1}
}

func (c *PerturbObserveController) ComputeAction(readings [4]float64, _ PanelState, _, _ float64) (float64, float64) {
	var total float64
	for _, r := range readings {
		total += r
	}

	// An exactly-zero previous total doubles as the "no baseline yet"
	// marker, so a genuinely dark step re-records the baseline instead of
	// perturbing. TODO: replace the sentinel with an explicit first-step flag.
	if c.prevTotal == 0 {
		c.prevTotal = total
		return 0, 0
	}

	if total <= c.prevTotal {
		if c.count%2 == 0 {
			c.aziDirection = -c.aziDirection
		} else {
			c.tiltDirection = -c.tiltDirection
		}
	}

	c.prevTotal = total
	c.count++

	return c.aziDirection * perturbMagnitude, c.tiltDirection * perturbMagnitude
}

const optimalGain = 0.1

// OptimalController drives straight toward the geometric optimum: tilt
// complementary to the sun elevation, azimuth equal to the sun azimuth.
// Stateless.
type OptimalController struct {
	maxVelocity float64
}

func NewOptimalController(maxVelocity float64) *OptimalController {
	return &OptimalController{maxVelocity: maxVelocity}
}

func (c *OptimalController) ComputeAction(_ [4]float64, state PanelState, sunElev, sunAzi float64) (float64, float64) {
	optimalTilt := 90 - radToDeg(sunElev)
	optimalAzi := radToDeg(sunAzi)

	errTilt := optimalTilt - state.Tilt
	errAzi := optimalAzi - state.Azimuth

	// Take the short way around: a 350°→10° target is a +20° move, not -340°.
	if errAzi > 180 {
		errAzi -= 360
	} else if errAzi < -180 {
		errAzi += 360
	}

	return clamp(errAzi*optimalGain, -c.maxVelocity, c.maxVelocity),
		clamp(errTilt*optimalGain, -c.maxVelocity, c.maxVelocity)
}

// hybridVarianceThreshold is the sensor reading variance above which the
// field is considered unevenly lit by partial cloud cover.
const hybridVarianceThreshold = 100

// HybridController delegates to the differential law under variable cloud
// cover and to the optimal law under even illumination. Both sub-controllers
// keep their internal state across switches for the life of the run.
type HybridController struct {
	optimal      *OptimalController
	differential *DifferentialController
	mode         model.ControllerType
}

func NewHybridController(maxVelocity float64) *HybridController {
	return &HybridController{
		optimal:      NewOptimalController(maxVelocity),
		differential: NewDifferentialController(maxVelocity),
		mode:         model.ControllerOptimal,
	}
}

// Mode returns the law the last ComputeAction delegated to.
func (c *HybridController) Mode() model.ControllerType { return c.mode }

func (c *HybridController) ComputeAction(readings [4]float64, state PanelState, sunElev, sunAzi float64) (float64, float64) {
	if stat.PopVariance(readings[:], nil) > hybridVarianceThreshold {
		c.mode = model.ControllerDifferential
		return c.differential.ComputeAction(readings, state, sunElev, sunAzi)
	}
	c.mode = model.ControllerOptimal
	return c.optimal.ComputeAction(readings, state, sunElev, sunAzi)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
