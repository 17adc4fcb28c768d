package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheHit(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))

	value, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), value)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemory()

	_, ok, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 24*time.Hour))

	now = now.Add(23 * time.Hour)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok, "entry should survive inside the TTL")

	now = now.Add(2 * time.Hour)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire after the TTL")
}

func TestMemoryCacheInvalidate(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Invalidate(ctx))

	_, ok, _ := c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "b")
	assert.False(t, ok)
}

func TestMemoryCacheOverwriteRefreshesTTL(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("old"), time.Hour))
	now = now.Add(50 * time.Minute)
	require.NoError(t, c.Set(ctx, "k", []byte("new"), time.Hour))

	now = now.Add(30 * time.Minute)
	value, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("new"), value)
}
