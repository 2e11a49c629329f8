package ws

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin from the stats UI
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades an HTTP request to a WebSocket connection and attaches
// the client to the hub. ctx is the server's lifetime, not the request's;
// the request context dies as soon as this handler returns.
func ServeWS(ctx context.Context, hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	client := NewClient(uuid.NewString(), conn, hub)
	hub.Register(client)

	go client.WritePump(ctx)
	go client.ReadPump(ctx)
}
