package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fortuna/services/game-feed-service/pkg/models"
	"github.com/redis/go-redis/v9"
)

// StreamPublisher publishes publish-worthy game events to Redis streams
// for downstream consumers (alerting, stats UI).
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{
		client: client,
	}
}

// PublishEvent publishes a game event to the league-specific stream
func (p *StreamPublisher) PublishEvent(ctx context.Context, league models.League, event models.GameEvent) error {
	streamKey := fmt.Sprintf("events.live.%s", strings.ToLower(string(league)))

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event update: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamKey,
		Values: map[string]interface{}{
			"data":      string(data),
			"game_uuid": event.GameUUID,
			"type":      string(event.Type),
		},
	}).Err()
}
