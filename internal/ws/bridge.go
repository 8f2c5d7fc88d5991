package ws

import (
	"log"

	"solar_tracker/internal/model"
)

// Bridge implements sim.Callback, relaying engine progress snapshots and
// completion to the WebSocket hub.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) OnProgress(snap model.Snapshot) error {
	msg, err := NewEnvelope(TypeSimulationData, snap)
	if err != nil {
		log.Printf("ws: marshaling snapshot: %v", err)
		return nil
	}
	b.hub.Broadcast(msg)
	return nil
}

func (b *Bridge) OnComplete(summary model.Summary) {
	msg, err := NewEnvelope(TypeSimulationComplete, CompletePayload{
		Message: "Simulation completed",
		Summary: summary,
	})
	if err != nil {
		log.Printf("ws: marshaling completion: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}
