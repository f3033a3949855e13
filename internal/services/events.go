package services

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is pushed to connected apps when something they display changes
// server-side: a resource controller transition or a payment outcome. An
// empty LoginID means the event is for everyone.
type Event struct {
	Type    string    `json:"type"`
	LoginID string    `json:"-"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// EventHub fans events out to websocket clients. Each connection is
// registered under the login it authenticated as and only sees its own
// events plus broadcasts.
type EventHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string
	ch      chan Event
}

func NewEventHub() *EventHub {
	return &EventHub{
		clients: map[*websocket.Conn]string{},
		ch:      make(chan Event, 64),
	}
}

func (h *EventHub) Run(ctx context.Context) {
	for {
		select {
		case event := <-h.ch:
			h.mu.Lock()
			for conn, loginID := range h.clients {
				if event.LoginID == "" || event.LoginID == loginID {
					_ = conn.WriteJSON(event)
				}
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// Publish enqueues an event, dropping it when the hub is backed up. Events
// are refresh hints, not state of record, so losing one is acceptable.
func (h *EventHub) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	select {
	case h.ch <- event:
	default:
	}
}

func (h *EventHub) Add(conn *websocket.Conn, loginID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = loginID
}

func (h *EventHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}
