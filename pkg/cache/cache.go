// Package cache stores assignment results and other byte payloads under
// string keys.
//
// Three backends implement [Cache]:
//
//   - [FileCache] keeps one JSON file per key under a directory (CLI default)
//   - [RedisCache] shares results between API instances
//   - [NullCache] disables caching
//
// Keys are built by a [Keyer] so that every backend sees the same layout.
// [ScopedKeyer] adds a prefix when several deployments share one store.
package cache

import (
	"context"
	"time"
)

// TTLAssignment is how long an assignment result and the chart snapshot it
// was made on can be looked up by ID.
const TTLAssignment = 30 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired key is reported
	// as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// AssignmentKey is the key for an assignment result.
	AssignmentKey(id string) string

	// ChartKey is the key for a chart snapshot at a given content hash.
	ChartKey(chartID, contentHash string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// AssignmentKey returns "assignment:<id>".
func (DefaultKeyer) AssignmentKey(id string) string {
	return "assignment:" + id
}

// ChartKey returns "chart:<hash of id and content hash>".
func (DefaultKeyer) ChartKey(chartID, contentHash string) string {
	return hashKey("chart", chartID, contentHash)
}

var _ Keyer = DefaultKeyer{}
