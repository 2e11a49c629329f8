package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fortuna/services/game-feed-service/internal/providers/shl"
	"github.com/fortuna/services/game-feed-service/internal/store"
	"github.com/fortuna/services/game-feed-service/pkg/models"
)

var emptyList = []byte("[]")

// EventService maintains the play-by-play feed for a game: raw provider
// records under one namespace, normalized events under another, both
// merged by event id.
type EventService struct {
	store   store.KeyedStore
	gateway *Gateway
	client  *shl.Client
}

// NewEventService creates an event service over the given store and client
func NewEventService(st store.KeyedStore, client *shl.Client) *EventService {
	return &EventService{
		store:   st,
		gateway: NewGateway(st),
		client:  client,
	}
}

// Update refreshes the raw play-by-play cache for a game when it is stale
// and returns the mapped events. Upstream failure yields an empty result,
// never an error; only storage failures propagate.
func (s *EventService) Update(ctx context.Context, gameUUID string, ttl *time.Duration) ([]models.GameEvent, error) {
	data, err := s.gateway.GetOrRefresh(ctx, store.NamespaceEventsRaw, gameUUID, ttl, emptyList, func(ctx context.Context) ([]byte, error) {
		events, err := s.client.FetchEvents(ctx, gameUUID)
		if err != nil {
			return nil, err
		}
		if events == nil {
			events = []shl.PlayByPlay{}
		}
		return json.Marshal(events)
	})
	if err != nil {
		return nil, err
	}

	var raw []shl.PlayByPlay
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling raw events for %s: %w", gameUUID, err)
	}

	events := make([]models.GameEvent, 0, len(raw))
	for _, r := range raw {
		events = append(events, MapEvent(gameUUID, r))
	}
	return events, nil
}

// StoreRaw upserts a single raw record into the game's raw sequence,
// for records arriving via push rather than poll. Returns true when the
// record is new, false when it replaced an existing one.
func (s *EventService) StoreRaw(ctx context.Context, gameUUID string, event shl.PlayByPlay) (bool, error) {
	var events []shl.PlayByPlay
	if err := s.readList(ctx, store.NamespaceEventsRaw, gameUUID, &events); err != nil {
		return false, err
	}

	// Replace in place to preserve arrival order; append when new.
	inserted := true
	for i, existing := range events {
		if existing.EventID == event.EventID {
			events[i] = event
			inserted = false
			break
		}
	}
	if inserted {
		events = append(events, event)
	}

	if err := s.writeList(ctx, store.NamespaceEventsRaw, gameUUID, events); err != nil {
		return false, err
	}
	return inserted, nil
}

// Store upserts a single normalized event into the game's domain sequence.
// Returns true when the event is new, false when it replaced an existing
// one. Last write wins; no revision comparison.
func (s *EventService) Store(ctx context.Context, gameUUID string, event models.GameEvent) (bool, error) {
	var events []models.GameEvent
	if err := s.readList(ctx, store.NamespaceEvents, gameUUID, &events); err != nil {
		return false, err
	}

	inserted := true
	for i, existing := range events {
		if existing.EventID == event.EventID {
			events[i] = event
			inserted = false
			break
		}
	}
	if inserted {
		events = append(events, event)
	}

	if err := s.writeList(ctx, store.NamespaceEvents, gameUUID, events); err != nil {
		return false, err
	}
	return inserted, nil
}

// Read returns the game's stored normalized events. Cache only, never
// triggers a fetch; empty when nothing has been stored.
func (s *EventService) Read(ctx context.Context, gameUUID string) ([]models.GameEvent, error) {
	var events []models.GameEvent
	if err := s.readList(ctx, store.NamespaceEvents, gameUUID, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ReadRaw returns the game's stored raw records. Cache only.
func (s *EventService) ReadRaw(ctx context.Context, gameUUID string) ([]shl.PlayByPlay, error) {
	var events []shl.PlayByPlay
	if err := s.readList(ctx, store.NamespaceEventsRaw, gameUUID, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// readList reads and decodes a stored sequence, defaulting to empty
func (s *EventService) readList(ctx context.Context, namespace, key string, out interface{}) error {
	data, ok, err := s.store.Read(ctx, namespace, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshaling %s/%s: %w", namespace, key, err)
	}
	return nil
}

// writeList encodes and stores a sequence
func (s *EventService) writeList(ctx context.Context, namespace, key string, list interface{}) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshaling %s/%s: %w", namespace, key, err)
	}
	return s.store.Write(ctx, namespace, key, data)
}
