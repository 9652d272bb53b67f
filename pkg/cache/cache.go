// Package cache stores computed schedules and rendered graph artifacts.
//
// Backends implement [Cache]: [FileCache] for local CLI use, [RedisCache] for
// a cache shared between machines, and [NullCache] when caching is disabled.
// Keys come from a [Keyer] so that every component derives the same key for
// the same inputs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value stored under key. A missing or expired entry is
	// a miss (hit == false) and not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Key types reported to observability hooks.
const (
	KeyTypeSchedule = "schedule"
	KeyTypeArtifact = "artifact"
)

// Keyer derives cache keys.
type Keyer interface {
	// ScheduleKey identifies the computed order for a catalog.
	ScheduleKey(catalogHash string, opts ScheduleKeyOpts) string

	// ArtifactKey identifies a rendered graph for a given DOT source hash.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// ScheduleKeyOpts holds the inputs besides the catalog that change a schedule.
type ScheduleKeyOpts struct {
	ContainerTypes []string `json:"container_types,omitempty"`
}

// ArtifactKeyOpts holds the inputs besides the DOT source that change an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer hashes key inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ScheduleKey returns "schedule:<sha256>".
func (DefaultKeyer) ScheduleKey(catalogHash string, opts ScheduleKeyOpts) string {
	return hashKey(KeyTypeSchedule, catalogHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, dotHash, opts)
}

// DefaultTTL is used when the configuration does not set one.
const DefaultTTL = 7 * 24 * time.Hour
