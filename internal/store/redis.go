package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// LiveGamesKey is the Redis list of game UUIDs currently being tracked,
	// maintained by the schedule service.
	LiveGamesKey = "games:live"

	// EntryTTL bounds how long any cache entry survives in Redis. Feed-level
	// staleness is computed from the envelope timestamp, not from this.
	EntryTTL = 48 * time.Hour
)

// envelope wraps every stored value with its write time so staleness can be
// computed without relying on Redis key expiry.
type envelope struct {
	WrittenAt time.Time       `json:"written_at"`
	Data      json.RawMessage `json:"data"`
}

// RedisStore is the Redis-backed KeyedStore
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

// Read retrieves the stored value for (namespace, key)
func (s *RedisStore) Read(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.buildKey(namespace, key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s/%s: %w", namespace, key, err)
	}

	var env envelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		return nil, false, fmt.Errorf("unmarshaling entry %s/%s: %w", namespace, key, err)
	}

	return env.Data, true, nil
}

// Write stores value under (namespace, key) with the current write time
func (s *RedisStore) Write(ctx context.Context, namespace, key string, value []byte) error {
	env := envelope{
		WrittenAt: time.Now(),
		Data:      value,
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshaling entry %s/%s: %w", namespace, key, err)
	}

	return s.client.Set(ctx, s.buildKey(namespace, key), data, EntryTTL).Err()
}

// IsStale reports whether the entry for (namespace, key) needs a refresh.
// Missing or unreadable entries count as stale; a nil ttl always does.
func (s *RedisStore) IsStale(ctx context.Context, namespace, key string, ttl *time.Duration) bool {
	if ttl == nil {
		return true
	}

	data, err := s.client.Get(ctx, s.buildKey(namespace, key)).Result()
	if err != nil {
		return true
	}

	var env envelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		return true
	}

	return time.Since(env.WrittenAt) > *ttl
}

// LiveGames returns the game UUIDs currently tracked for polling
func (s *RedisStore) LiveGames(ctx context.Context) ([]string, error) {
	return s.client.LRange(ctx, LiveGamesKey, 0, -1).Result()
}

// buildKey namespaces a key into a single Redis key
func (s *RedisStore) buildKey(namespace, key string) string {
	return fmt.Sprintf("feed:%s:%s", namespace, key)
}
