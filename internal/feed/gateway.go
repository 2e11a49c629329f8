package feed

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/services/game-feed-service/internal/store"
)

// FetchFunc fetches a fresh serialized payload from the upstream provider
type FetchFunc func(ctx context.Context) ([]byte, error)

// Gateway gates upstream fetches behind the store's staleness predicate.
// All three feeds share this fetch-or-serve-cached protocol.
type Gateway struct {
	store store.KeyedStore
}

// NewGateway creates a gateway over the given store
func NewGateway(st store.KeyedStore) *Gateway {
	return &Gateway{
		store: st,
	}
}

// GetOrRefresh returns the cached value for (namespace, key) when it is
// still fresh, otherwise fetches a new one and persists it. A nil ttl
// forces a refresh. Upstream failure degrades to the empty payload, which
// is persisted like any other result so downstream merge logic still runs
// deterministically; only storage failures propagate.
func (g *Gateway) GetOrRefresh(ctx context.Context, namespace, key string, ttl *time.Duration, empty []byte, fetch FetchFunc) ([]byte, error) {
	if !g.store.IsStale(ctx, namespace, key, ttl) {
		value, ok, err := g.store.Read(ctx, namespace, key)
		if err != nil {
			return nil, err
		}
		if ok {
			return value, nil
		}
		// Entry vanished between the staleness check and the read; treat
		// as stale and fall through to the fetch.
	}

	value, err := fetch(ctx)
	if err != nil || value == nil {
		if err != nil {
			log.Printf("[gateway] fetch failed for %s/%s: %v", namespace, key, err)
		}
		value = empty
	}

	if err := g.store.Write(ctx, namespace, key, value); err != nil {
		return nil, err
	}

	return value, nil
}
