package ws

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/fortuna/services/game-feed-service/pkg/models"
)

// Hub maintains the set of connected clients and fans published game
// events out to the ones subscribed to the event's game.
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan models.GameEvent
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan models.GameEvent, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) {
	log.Println("[ws] hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast queues a game event for fan-out without blocking the caller
func (h *Hub) Broadcast(event models.GameEvent) {
	select {
	case h.broadcast <- event:
	default:
		log.Println("[ws] broadcast buffer full, dropping event")
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	log.Printf("[ws] client %s connected (total: %d)", c.ID, len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		log.Printf("[ws] client %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

// broadcastEvent sends an event to every client subscribed to its game
func (h *Hub) broadcastEvent(event models.GameEvent) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	message := ServerMessage{
		Type:      MessageTypeEvent,
		Payload:   &event,
		GameUUID:  event.GameUUID,
		Timestamp: time.Now(),
	}

	for _, c := range clients {
		if !c.WantsGame(event.GameUUID) {
			continue
		}

		if !c.TrySend(message) {
			// Client buffer full - they're too slow, disconnect them
			log.Printf("[ws] client %s buffer full, disconnecting", c.ID)
			go h.Unregister(c)
		}
	}
}

// shutdown closes all client connections
func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	log.Printf("[ws] shutting down hub (%d active clients)", len(h.clients))

	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
}
