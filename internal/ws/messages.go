package ws

import (
	"encoding/json"

	"solar_tracker/internal/model"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeSimStart = "sim:start"

	// Server -> Client
	TypeSimState           = "sim:state"
	TypeSimulationData     = "simulation:data"
	TypeSimulationComplete = "simulation:complete"
)

// StartPayload requests a new run: a preset name layered under explicit
// config overrides, both optional.
type StartPayload struct {
	Preset string         `json:"preset,omitempty"`
	Config map[string]any `json:"config,omitempty"`
}

// StatePayload describes the current run for newly connected clients.
type StatePayload struct {
	RunID    string         `json:"run_id,omitempty"`
	Status   model.RunState `json:"status"`
	Progress float64        `json:"progress"`
}

// CompletePayload announces the end of a run.
type CompletePayload struct {
	Message string        `json:"message"`
	Summary model.Summary `json:"summary"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}
