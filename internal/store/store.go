package store

import (
	"context"
	"time"
)

// Namespaces for the persisted feed layouts. Raw provider payloads and
// normalized domain records live in separate namespaces, both keyed by
// game UUID; the rest namespace is keyed by provider URL.
const (
	NamespaceEventsRaw = "events_raw"
	NamespaceEvents    = "events"
	NamespaceRest      = "rest"
)

// KeyedStore is the persistence contract the feed services run on.
// Values are opaque JSON blobs; staleness is computed from the entry's
// last-write time against a caller-supplied TTL. The store is the sole
// synchronization point for concurrent updates against the same key; the
// feed layer adds no locking of its own.
type KeyedStore interface {
	// Read returns the stored value for (namespace, key), with ok=false
	// when no entry exists.
	Read(ctx context.Context, namespace, key string) (value []byte, ok bool, err error)

	// Write stores value under (namespace, key), stamping the write time.
	Write(ctx context.Context, namespace, key string, value []byte) error

	// IsStale reports whether the entry is missing or older than ttl.
	// A nil ttl means always stale, forcing a refresh on every update.
	IsStale(ctx context.Context, namespace, key string, ttl *time.Duration) bool
}
