package ws

import (
	"time"

	"github.com/fortuna/services/game-feed-service/pkg/models"
)

// MessageType identifies a server message
type MessageType string

const (
	MessageTypeEvent      MessageType = "event"
	MessageTypeSubscribed MessageType = "subscribed"
)

// ServerMessage is the envelope pushed to connected clients
type ServerMessage struct {
	Type      MessageType       `json:"type"`
	Payload   *models.GameEvent `json:"payload,omitempty"`
	GameUUID  string            `json:"game_uuid,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// ClientMessage is what clients send to manage their subscription
type ClientMessage struct {
	Action   string `json:"action"` // "subscribe" or "unsubscribe"
	GameUUID string `json:"game_uuid"`
}
