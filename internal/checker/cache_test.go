package checker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheHitWithinTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newCacheAt(10*time.Minute, func() time.Time { return now })

	c.Set("gog:123", "58899")

	v, ok := c.Get("gog:123")
	assert.True(t, ok)
	assert.Equal(t, "58899", v)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newCacheAt(10*time.Minute, func() time.Time { return now })

	c.Set("gog:123", "58899")
	now = now.Add(11 * time.Minute)

	_, ok := c.Get("gog:123")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry is evicted on read")
}

func TestCacheMiss(t *testing.T) {
	t.Parallel()

	c := NewCache(time.Minute)
	_, ok := c.Get("steam:palworld")
	assert.False(t, ok)
}

func TestCacheSeparateInstancesDoNotShareState(t *testing.T) {
	t.Parallel()

	a := NewCache(time.Minute)
	b := NewCache(time.Minute)

	a.Set("k", "1")
	_, ok := b.Get("k")
	assert.False(t, ok)
}
