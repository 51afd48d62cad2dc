package api

import (
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// PipelineEvent represents a pipeline progress event for SSE streaming
type PipelineEvent struct {
	EventType  string    `json:"event_type"` // "normalize_progress", "dashboard_refreshed"
	PropertyID string    `json:"property_id,omitempty"`
	Done       int       `json:"done,omitempty"`
	Total      int       `json:"total,omitempty"`
	Progress   float64   `json:"progress"`
	Timestamp  time.Time `json:"timestamp"`
}

// SSEHub manages Server-Sent Events for live dashboard updates. Browsers
// subscribe once and receive normalization progress and refresh signals as
// the portfolio recomputes.
type SSEHub struct {
	clients    map[chan PipelineEvent]bool
	clientsMu  sync.RWMutex
	register   chan chan PipelineEvent
	unregister chan chan PipelineEvent
	broadcast  chan PipelineEvent
}

// NewSSEHub creates a new SSE hub
func NewSSEHub() *SSEHub {
	hub := &SSEHub{
		clients:    make(map[chan PipelineEvent]bool),
		register:   make(chan chan PipelineEvent, 10),
		unregister: make(chan chan PipelineEvent, 10),
		broadcast:  make(chan PipelineEvent, 100),
	}

	go hub.run()
	return hub
}

// run processes SSE hub operations
func (h *SSEHub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			log.Printf("[SSE] Client registered (total clients: %d)", len(h.clients))
			h.clientsMu.Unlock()

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, exists := h.clients[client]; exists {
				delete(h.clients, client)
				close(client)
				log.Printf("[SSE] Client unregistered (remaining clients: %d)", len(h.clients))
			}
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			for clientChan := range h.clients {
				select {
				case clientChan <- event:
					// Event sent successfully
				default:
					// Client channel is full, skip
					log.Printf("[SSE] Client channel full, skipping %s event", event.EventType)
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Broadcast sends an event to every connected client
func (h *SSEHub) Broadcast(event PipelineEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- event:
	default:
		log.Printf("[SSE] Broadcast channel full, dropping event: %s", event.EventType)
	}
}

// HandleSSE handles the Server-Sent Events endpoint
func (h *SSEHub) HandleSSE(c *gin.Context) {
	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")

	clientChan := make(chan PipelineEvent, 10)

	select {
	case h.register <- clientChan:
	default:
		c.JSON(500, gin.H{"error": "SSE hub registration failed"})
		return
	}

	defer func() {
		select {
		case h.unregister <- clientChan:
		default:
			// Hub might be overloaded, just let GC reclaim the channel
		}
	}()

	// Keep connection alive and stream events
	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case event := <-clientChan:
			eventJSON, err := json.Marshal(event)
			if err != nil {
				log.Printf("[SSE] Failed to marshal event: %v", err)
				return true
			}
			c.SSEvent("pipeline", string(eventJSON))
			return true

		case <-time.After(30 * time.Second):
			// Send ping to keep connection alive
			c.SSEvent("ping", `{"status": "alive", "timestamp": "`+time.Now().Format(time.RFC3339)+`"}`)
			return true

		case <-ctx.Done():
			// Client disconnected
			return false
		}
	})
}

// ClientCount returns the number of connected clients
func (h *SSEHub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}
