package model

import "time"

// ControllerType selects the tracking strategy for a run.
type ControllerType string

const (
	ControllerDifferential   ControllerType = "diff"
	ControllerPerturbObserve ControllerType = "po"
	ControllerOptimal        ControllerType = "optimal"
	ControllerHybrid         ControllerType = "hybrid"
)

// Valid reports whether t names a known controller variant.
func (t ControllerType) Valid() bool {
	switch t {
	case ControllerDifferential, ControllerPerturbObserve, ControllerOptimal, ControllerHybrid:
		return true
	}
	return false
}

// RunState tracks the single-shot engine lifecycle.
type RunState string

const (
	RunIdle      RunState = "idle"
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunFailed    RunState = "failed"
)

// Result is one recorded simulation step. Angles are degrees, irradiance
// values W/m², time is the elapsed offset in seconds from the run start.
type Result struct {
	Time            float64    `json:"time"`
	SunElevation    float64    `json:"sun_elevation"`
	SunAzimuth      float64    `json:"sun_azimuth"`
	PanelTilt       float64    `json:"panel_tilt"`
	PanelAzimuth    float64    `json:"panel_azimuth"`
	SensorReadings  [4]float64 `json:"sensor_readings"`
	TotalIrradiance float64    `json:"total_irradiance"`
	POADirect       float64    `json:"poa_dir"`
	POADiffuse      float64    `json:"poa_dif"`
	POAGlobal       float64    `json:"poa_glb"`
	DeltaAzimuth    float64    `json:"delta_azimuth"`
	DeltaTilt       float64    `json:"delta_tilt"`
	CloudCover      float64    `json:"cloud_cover"`
}

// Summary holds aggregate statistics over a run's full result history.
type Summary struct {
	TotalEnergy   float64 `json:"total_energy"`
	AvgEfficiency float64 `json:"avg_efficiency"`
	MaxIrradiance float64 `json:"max_irradiance"`
	MinIrradiance float64 `json:"min_irradiance"`
}

// Snapshot is delivered to the progress sink at the reporting cadence.
type Snapshot struct {
	Progress     float64 `json:"progress"`
	CurrentData  Result  `json:"current_data"`
	SummaryStats Summary `json:"summary_stats"`
}

// RunInfo describes one simulation run.
type RunInfo struct {
	ID          string         `json:"id"`
	Controller  ControllerType `json:"controller"`
	State       RunState       `json:"state"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at,omitzero"`
	Steps       int            `json:"steps"`
}

// Run is a completed simulation kept in the archive.
type Run struct {
	Info    RunInfo
	Results []Result
	Summary Summary
}
