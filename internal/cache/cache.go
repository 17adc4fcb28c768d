// Package cache provides the read-through result cache used by the
// catalog service. Entries are immutable once written and keyed by the
// full normalized filter/sort/page tuple, so concurrent writers for the
// same key race harmlessly to equal values.
package cache

import (
	"context"
	"time"
)

// Cache stores serialized catalog pages with a bounded lifetime. Misses
// are not errors; Get reports them through the bool. Invalidate drops
// every catalog entry and is driven by admin mutation events, bounding
// staleness tighter than the TTL alone.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
