// Package realtime pushes reservation and waitlist events to connected WebSocket listeners.
//
// Delivery is best effort and not durable: a listener only sees events broadcast while it
// is connected, and a listener whose queue is full misses the event.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// Event types
const (
	EventConnected                = "connected"
	EventNewReservation           = "new_reservation"
	EventReservationStatusUpdated = "reservation_status_updated"
	EventNewWaitlist              = "new_waitlist"
	EventWaitlistStatusUpdated    = "waitlist_status_updated"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Relay forwards locally broadcast payloads to other server instances.
type Relay interface {
	Publish(payload []byte)
}

// relayBuffer is how many payloads may wait for the relay before new ones are dropped.
const relayBuffer = 256

// Hub is the set of connected listeners.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	outbox  chan []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// SetRelay attaches a cross-instance relay. Payloads reach it from a separate goroutine, so a
// slow relay never holds up Broadcast. Call once, before serving traffic.
func (h *Hub) SetRelay(r Relay) {
	outbox := make(chan []byte, relayBuffer)
	h.mu.Lock()
	h.outbox = outbox
	h.mu.Unlock()

	go func() {
		for payload := range outbox {
			r.Publish(payload)
		}
	}()
}

// Register adds c and queues the connected greeting for it.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	if payload, err := json.Marshal(Message{Type: EventConnected}); err == nil {
		c.enqueue(payload)
	}
	utils.InfoLogger.WithFields(logrus.Fields{"remote": c.remote, "clients": total}).Info("ws client registered")
}

// Unregister removes c and closes its queue. Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		c.close()
		utils.InfoLogger.WithField("remote", c.remote).Info("ws client unregistered")
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends {type, data} to every current listener and queues it for the relay, if any.
// It never blocks on a slow listener or relay.
func (h *Hub) Broadcast(event string, data interface{}) {
	payload, err := json.Marshal(Message{Type: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Errorf("broadcast marshal error: %v", err)
		return
	}

	h.Deliver(payload)

	h.mu.RLock()
	outbox := h.outbox
	h.mu.RUnlock()
	if outbox == nil {
		return
	}
	select {
	case outbox <- payload:
	default:
		utils.ErrorLogger.Warnf("relay queue full, dropping %s event", event)
	}
}

// Deliver fans an already encoded message out to local listeners only.
func (h *Hub) Deliver(payload []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.enqueue(payload) {
			utils.InfoLogger.WithField("remote", c.remote).Debug("ws listener skipped")
		}
	}
}
