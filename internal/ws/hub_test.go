package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar_tracker/internal/model"
)

func TestNewEnvelope(t *testing.T) {
	payload := StatePayload{
		RunID:    "run-1",
		Status:   model.RunRunning,
		Progress: 42.5,
	}

	msg, err := NewEnvelope(TypeSimState, payload)
	require.NoError(t, err)

	var env Envelope
	err = json.Unmarshal(msg, &env)
	require.NoError(t, err)

	assert.Equal(t, TypeSimState, env.Type)

	var parsed StatePayload
	err = json.Unmarshal(env.Payload, &parsed)
	require.NoError(t, err)

	assert.Equal(t, "run-1", parsed.RunID)
	assert.Equal(t, model.RunRunning, parsed.Status)
	assert.Equal(t, 42.5, parsed.Progress)
}

func TestNewEnvelope_NoPayload(t *testing.T) {
	msg, err := NewEnvelope(TypeSimStart, nil)
	require.NoError(t, err)

	var env Envelope
	err = json.Unmarshal(msg, &env)
	require.NoError(t, err)

	assert.Equal(t, TypeSimStart, env.Type)
	assert.Nil(t, env.Payload)
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	c := &Client{send: make(chan []byte, 16)}

	hub.Register(c)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(c)
	assert.Equal(t, 0, hub.ClientCount())

	// Unregistering twice is harmless.
	hub.Unregister(c)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()

	c1 := &Client{send: make(chan []byte, 16)}
	c2 := &Client{send: make(chan []byte, 16)}

	hub.Register(c1)
	hub.Register(c2)

	msg := []byte(`{"type":"test"}`)
	hub.Broadcast(msg)

	assert.Equal(t, msg, <-c1.send)
	assert.Equal(t, msg, <-c2.send)
}

func TestHub_BroadcastDropsWhenFull(t *testing.T) {
	hub := NewHub()

	c := &Client{send: make(chan []byte, 1)}
	hub.Register(c)

	hub.Broadcast([]byte("first"))
	hub.Broadcast([]byte("dropped"))

	assert.Equal(t, []byte("first"), <-c.send)
	select {
	case extra := <-c.send:
		t.Fatalf("expected second message dropped, got %q", extra)
	default:
	}
}

func TestMessageTypes(t *testing.T) {
	assert.Equal(t, "sim:start", TypeSimStart)
	assert.Equal(t, "sim:state", TypeSimState)
	assert.Equal(t, "simulation:data", TypeSimulationData)
	assert.Equal(t, "simulation:complete", TypeSimulationComplete)
}
