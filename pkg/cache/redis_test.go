package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*MenuCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewMenuCache(client, time.Minute), mr
}

func TestMenuCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	got, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got, "miss reads as empty, not as an error")

	require.NoError(t, c.Set(ctx, 7, `{"restaurantId":7}`))

	got, err = c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, `{"restaurantId":7}`, got)

	// entries expire on their own
	mr.FastForward(2 * time.Minute)
	got, err = c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMenuCacheInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 7, "payload"))
	require.NoError(t, c.Set(ctx, 8, "other"))

	require.NoError(t, c.Invalidate(ctx, 7))

	assert.False(t, mr.Exists(c.MenuKey(7)))
	assert.True(t, mr.Exists(c.MenuKey(8)), "other tenants keep their entries")
}

func TestMenuCacheNilIsAMiss(t *testing.T) {
	var c *MenuCache
	ctx := context.Background()

	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, c.Set(ctx, 1, "payload"))
	require.NoError(t, c.Invalidate(ctx, 1))
}
