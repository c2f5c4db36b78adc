// Package events pushes state-change notifications to open websocket
// sessions. It carries notifications only; clients refetch what they need.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/travel-journal/backend/internal/service"
)

// Message is the JSON frame sent to clients.
type Message struct {
	Type      string    `json:"type"`
	TripID    string    `json:"tripId,omitempty"`
	StepID    string    `json:"stepId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub tracks connected clients and fans messages out to them.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan Message
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.RWMutex
	log        *slog.Logger
	now        func() time.Time
}

// NewHub returns a Hub. Call Run before serving connections.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		log:        log,
		now:        time.Now,
	}
}

var _ service.ChangeNotifier = (*Hub)(nil)

// StateChanged queues a notification for every client. It never blocks; when
// the queue is full the notification is dropped.
func (h *Hub) StateChanged(ctx context.Context, c service.Change) {
	msg := Message{Type: c.Kind, TripID: c.TripID, StepID: c.StepID, Timestamp: h.now().UTC()}
	select {
	case h.broadcast <- msg:
	default:
		h.log.WarnContext(ctx, "event queue full; dropping notification", "type", c.Kind)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run processes registrations and broadcasts until ctx is done, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			b, err := json.Marshal(msg)
			if err != nil {
				h.log.Error("encode event", "error", err)
				continue
			}
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- b:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mu.Unlock()
		}
	}
}
