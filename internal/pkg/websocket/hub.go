// Package websocket pushes batch generation progress to connected clients so
// an operator watching a long batch sees per-item outcomes as they happen
// instead of waiting for the final summary.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event is one progress update for a batch run
type Event struct {
	// BatchID identifies the run; one batch request produces one id.
	BatchID string `json:"batchId"`

	// StudentID is the item this event reports on
	StudentID int64 `json:"studentId"`

	// Index is the 1-based position of the item in the batch
	Index int `json:"index"`

	// Total is the batch size
	Total int `json:"total"`

	// Status is "completed" or "failed"
	Status string `json:"status"`

	// ReportID is set on completed items
	ReportID string `json:"reportId,omitempty"`

	// Error carries the item's failure message
	Error string `json:"error,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Event statuses
const (
	EventStatusCompleted = "completed"
	EventStatusFailed    = "failed"
)

// Hub maintains the set of active clients and broadcasts progress events to them
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Channel for outbound progress events
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new progress hub
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes register, unregister and broadcast requests. Call in its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug().Int64("userID", client.userID).Msg("Progress client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug().Int64("userID", client.userID).Msg("Progress client unregistered")

		case event := <-h.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error().Err(err).Str("batchId", event.BatchID).Msg("Failed to marshal progress event")
				continue
			}

			var slow []*Client
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()

			// Slow clients get dropped rather than blocking the batch.
			if len(slow) > 0 {
				h.mu.Lock()
				for _, client := range slow {
					if _, ok := h.clients[client]; ok {
						delete(h.clients, client)
						close(client.send)
					}
				}
				h.mu.Unlock()
			}
		}
	}
}

// Publish queues a progress event for broadcast. Never blocks the caller; if
// the hub is saturated the event is dropped with a warning.
func (h *Hub) Publish(event *Event) {
	if h == nil {
		return
	}
	event.Timestamp = time.Now()

	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("batchId", event.BatchID).Int64("studentId", event.StudentID).
			Msg("Progress event dropped, hub saturated")
	}
}
