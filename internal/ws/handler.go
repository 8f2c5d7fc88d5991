package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StartFunc launches a new simulation run and returns its ID.
type StartFunc func(preset string, overrides map[string]any) (string, error)

// StateFunc reports the current run state for newly connected clients.
type StateFunc func() StatePayload

// Handler upgrades connections, registers clients with the hub and routes
// client messages.
type Handler struct {
	hub   *Hub
	start StartFunc
	state StateFunc
}

func NewHandler(hub *Hub, start StartFunc, state StateFunc) *Handler {
	return &Handler{hub: hub, start: start, state: state}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade error: %v", err)
		return
	}

	client := newClient(conn)
	h.hub.Register(client)
	go client.writePump()

	h.sendState(client)
	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: read error: %v", err)
			}
			return
		}
		h.handleMessage(msg)
	}
}

func (h *Handler) handleMessage(msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("ws: invalid message: %v", err)
		return
	}

	switch env.Type {
	case TypeSimStart:
		var p StartPayload
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				log.Printf("ws: invalid sim:start payload: %v", err)
				return
			}
		}
		if _, err := h.start(p.Preset, p.Config); err != nil {
			log.Printf("ws: sim:start: %v", err)
		}

	default:
		log.Printf("ws: unknown message type %q", env.Type)
	}
}

func (h *Handler) sendState(c *Client) {
	msg, err := NewEnvelope(TypeSimState, h.state())
	if err != nil {
		return
	}
	c.queue(msg)
}
