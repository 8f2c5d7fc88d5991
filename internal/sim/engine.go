package sim

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"solar_tracker/internal/model"
)

// Callback receives progress events from a running engine. OnProgress is
// invoked synchronously from the step loop every tenth step and on the final
// step; returning an error aborts the run. OnComplete fires once after the
// loop finishes.
type Callback interface {
	OnProgress(snap model.Snapshot) error
	OnComplete(summary model.Summary)
}

// ErrAlreadyRan is returned when Run is called on a spent engine.
var ErrAlreadyRan = errors.New("sim: engine already ran")

// progressEvery is the sink cadence in steps.
const progressEvery = 10

// Engine steps one simulation from start to completion, accumulating a
// result record per step. One engine drives exactly one run: the lifecycle
// is idle → running → completed, with no pause or cancellation.
//
// The step loop runs on a single goroutine; the mutex only shields the
// progress, state and result fields from concurrent status readers.
type Engine struct {
	mu sync.Mutex

	cfg        Config
	panel      *Panel
	clouds     *CloudField
	sun        *SunModel
	sensors    *SensorModel
	controller Controller

	state    model.RunState
	progress float64 // 0-100
	results  []model.Result
}

// New validates the config and assembles the simulation components.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sun, err := NewSunModel(&cfg)
	if err != nil {
		return nil, err
	}
	controller, err := NewController(&cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:        cfg,
		panel:      NewPanel(&cfg),
		clouds:     NewCloudField(&cfg),
		sun:        sun,
		sensors:    NewSensorModel(&cfg, sun),
		controller: controller,
		state:      model.RunIdle,
	}, nil
}

// Config returns the engine's immutable configuration.
func (e *Engine) Config() Config { return e.cfg }

// State returns the current lifecycle state.
func (e *Engine) State() model.RunState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Running reports whether the step loop is active.
func (e *Engine) Running() bool { return e.State() == model.RunRunning }

// Progress returns the completion percentage, 0-100.
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress
}

// StepCount returns the number of results recorded so far.
func (e *Engine) StepCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.results)
}

// Run executes the whole simulation synchronously. cb may be nil. Run may
// only be called once per engine; a sink error aborts the run and is
// returned wrapped.
func (e *Engine) Run(cb Callback) error {
	e.mu.Lock()
	if e.state != model.RunIdle {
		e.mu.Unlock()
		return ErrAlreadyRan
	}
	e.state = model.RunRunning
	e.mu.Unlock()

	totalSteps := e.cfg.TotalSteps()

	for i := 0; i < totalSteps; i++ {
		t := float64(i) * e.cfg.ControlPeriod

		sunElev, sunAzi := e.sun.Position(t)
		readings := e.sensors.Readings(e.panel, t, e.clouds)
		state := e.panel.State()
		dAzi, dTilt := e.controller.ComputeAction(readings, state, sunElev, sunAzi)
		e.panel.SetOrientation(state.Tilt+dTilt, state.Azimuth+dAzi)
		e.clouds.Advance(e.cfg.ControlPeriod)

		// Recorded at the panel's new orientation.
		poaDir, poaDif, poaGlb := e.sun.Irradiance(t, e.panel.Tilt(), e.panel.Azimuth())

		var total float64
		for _, r := range readings {
			total += r
		}

		res := model.Result{
			Time:            t,
			SunElevation:    radToDeg(sunElev),
			SunAzimuth:      radToDeg(sunAzi),
			PanelTilt:       e.panel.Tilt(),
			PanelAzimuth:    e.panel.Azimuth(),
			SensorReadings:  readings,
			TotalIrradiance: total,
			POADirect:       poaDir,
			POADiffuse:      poaDif,
			POAGlobal:       poaGlb,
			DeltaAzimuth:    dAzi,
			DeltaTilt:       dTilt,
			CloudCover:      1 - e.clouds.Attenuation(0, 0),
		}

		e.mu.Lock()
		e.results = append(e.results, res)
		e.progress = float64(i+1) / float64(totalSteps) * 100
		progress := e.progress
		e.mu.Unlock()

		if cb != nil && (i%progressEvery == 0 || i == totalSteps-1) {
			snap := model.Snapshot{
				Progress:     progress,
				CurrentData:  res,
				SummaryStats: e.SummaryStats(),
			}
			if err := cb.OnProgress(snap); err != nil {
				e.mu.Lock()
				e.state = model.RunFailed
				e.mu.Unlock()
				return fmt.Errorf("progress sink: %w", err)
			}
		}
	}

	e.mu.Lock()
	e.state = model.RunCompleted
	summary := e.summarizeLocked()
	e.mu.Unlock()

	if cb != nil {
		cb.OnComplete(summary)
	}
	return nil
}

// LatestResults returns the last n results in chronological order. When n
// is non-positive or exceeds the history, the full history is returned.
func (e *Engine) LatestResults(n int) []model.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n <= 0 || n > len(e.results) {
		n = len(e.results)
	}
	out := make([]model.Result, n)
	copy(out, e.results[len(e.results)-n:])
	return out
}

// SummaryStats recomputes the aggregate statistics from the full result
// history. Returns the zero Summary if no step has recorded yet.
func (e *Engine) SummaryStats() model.Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summarizeLocked()
}

func (e *Engine) summarizeLocked() model.Summary {
	if len(e.results) == 0 {
		return model.Summary{}
	}

	totals := make([]float64, len(e.results))
	globals := make([]float64, len(e.results))
	sum := 0.0
	max := math.Inf(-1)
	min := math.Inf(1)
	for i, r := range e.results {
		totals[i] = r.TotalIrradiance
		globals[i] = r.POAGlobal
		sum += r.TotalIrradiance
		if r.TotalIrradiance > max {
			max = r.TotalIrradiance
		}
		if r.TotalIrradiance < min {
			min = r.TotalIrradiance
		}
	}

	var eff float64
	if meanGlb := stat.Mean(globals, nil); meanGlb != 0 {
		eff = 100 * stat.Mean(totals, nil) / meanGlb
	}

	return model.Summary{
		TotalEnergy:   sum,
		AvgEfficiency: eff,
		MaxIrradiance: max,
		MinIrradiance: min,
	}
}
