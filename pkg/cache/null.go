package cache

import (
	"context"
	"time"
)

// NullCache stores nothing and reports every lookup as a miss. It backs the
// "none" backend and --no-cache. It deliberately does not implement
// [Clearer], so "cache clear" can tell that caching is off.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() *NullCache {
	return &NullCache{}
}

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
