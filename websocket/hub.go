package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client represents a connected dashboard client
type Client struct {
	Hub    *Hub
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub manages all connected dashboard clients and fans events out to them
type Hub struct {
	// Registered clients, keyed by connection (one staff member may have
	// several dashboard tabs open)
	Clients map[*Client]bool

	// Broadcast channel for events to all clients
	Broadcast chan *Event

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// Event is a dashboard notification: a booking, rental or task changed
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Event types pushed to the dashboard
const (
	EventBookingCreated   = "booking_created"
	EventBookingUpdated   = "booking_updated"
	EventBookingCancelled = "booking_cancelled"
	EventRentalStarted    = "rental_started"
	EventRentalEnded      = "rental_ended"
	EventTaskUpdated      = "task_updated"
	EventContactReceived  = "contact_received"
)

// NewHub creates a new dashboard hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan *Event, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.mu.Unlock()
			log.Printf("🔌 Dashboard client connected: user=%d", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Dashboard client disconnected: user=%d", client.UserID)

		case event := <-h.Broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) broadcastEvent(event *Event) {
	payload, err := marshalEvent(event)
	if err != nil {
		log.Printf("❌ Failed to marshal dashboard event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.Clients {
		select {
		case client.Send <- payload:
		default:
			// Slow client, drop the event rather than block the hub
			log.Printf("⚠️ Dashboard client %d send buffer full, dropping event", client.UserID)
		}
	}
}

// Publish queues an event for broadcast without blocking the caller
func (h *Hub) Publish(eventType string, data interface{}) {
	event := &Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	select {
	case h.Broadcast <- event:
	default:
		log.Printf("⚠️ Dashboard event channel full, dropping %s", eventType)
	}
}
