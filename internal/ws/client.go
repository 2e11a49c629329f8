package ws

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Buffer size for outbound messages
	sendBufferSize = 64
)

// Client represents one WebSocket connection to a stats UI
type Client struct {
	ID   string
	Send chan ServerMessage // Exported for hub access

	conn *websocket.Conn
	hub  Unregisterer

	// Game UUIDs the client wants events for; empty set means all games
	games   map[string]bool
	gamesMu sync.RWMutex
}

// Unregisterer is the part of the hub a client needs
type Unregisterer interface {
	Unregister(client *Client)
}

// NewClient creates a new client instance
func NewClient(id string, conn *websocket.Conn, hub Unregisterer) *Client {
	return &Client{
		ID:    id,
		Send:  make(chan ServerMessage, sendBufferSize),
		conn:  conn,
		hub:   hub,
		games: make(map[string]bool),
	}
}

// ReadPump pumps subscription messages from the connection
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg ClientMessage
			if err := c.conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[ws] client %s unexpected close: %v", c.ID, err)
				}
				return
			}
			c.handleClientMessage(msg)
		}
	}
}

// WritePump pumps messages from the hub to the connection
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				log.Printf("[ws] client %s write error: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend sends a message to the client without blocking.
// Returns false when the client's buffer is full.
func (c *Client) TrySend(msg ServerMessage) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// WantsGame reports whether the client subscribed to this game.
// A client with no explicit subscriptions gets every game.
func (c *Client) WantsGame(gameUUID string) bool {
	c.gamesMu.RLock()
	defer c.gamesMu.RUnlock()

	if len(c.games) == 0 {
		return true
	}
	return c.games[gameUUID]
}

// handleClientMessage applies a subscription change
func (c *Client) handleClientMessage(msg ClientMessage) {
	switch msg.Action {
	case "subscribe":
		if msg.GameUUID == "" {
			return
		}
		c.gamesMu.Lock()
		c.games[msg.GameUUID] = true
		c.gamesMu.Unlock()

		c.TrySend(ServerMessage{
			Type:      MessageTypeSubscribed,
			GameUUID:  msg.GameUUID,
			Timestamp: time.Now(),
		})

	case "unsubscribe":
		c.gamesMu.Lock()
		delete(c.games, msg.GameUUID)
		c.gamesMu.Unlock()
	}
}
