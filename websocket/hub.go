package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// FinanceEvent is a message broadcast to connected admin dashboards when
// money moves: commission payouts, distributions, wallet adjustments.
type FinanceEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Client represents a connected WebSocket client
type Client struct {
	Conn *websocket.Conn
	Role string
}

// Hub maintains the set of active clients and broadcasts finance events
// to all of them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan FinanceEvent
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan FinanceEvent, 64),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Conn.Close()
			}
			h.mu.Unlock()
		case event := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if err := client.Conn.WriteJSON(event); err != nil {
					client.Conn.Close()
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish queues a finance event for broadcast. It implements the event
// sink used by the services layer and never blocks the caller: if the
// buffer is full the event is dropped.
func (h *Hub) Publish(eventType, message string, data interface{}) {
	event := FinanceEvent{
		Type:      eventType,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}

	select {
	case h.broadcast <- event:
	default:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
