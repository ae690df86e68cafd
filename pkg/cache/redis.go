package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// MenuCache fronts the public menu read path. Nil receiver is valid and
// turns every call into a miss, so Redis stays optional.
type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{Client: client, TTL: ttl}
}

func (c *MenuCache) MenuKey(restaurantID uint) string {
	return "menu:" + strconv.FormatUint(uint64(restaurantID), 10)
}

// Get returns the cached menu JSON, or ("", nil) on a miss.
func (c *MenuCache) Get(ctx context.Context, restaurantID uint) (string, error) {
	if c == nil || c.Client == nil {
		return "", nil
	}
	v, err := c.Client.Get(ctx, c.MenuKey(restaurantID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (c *MenuCache) Set(ctx context.Context, restaurantID uint, payload string) error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Set(ctx, c.MenuKey(restaurantID), payload, c.TTL).Err()
}

// Invalidate drops the cached menu after any category/item mutation.
func (c *MenuCache) Invalidate(ctx context.Context, restaurantID uint) error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Del(ctx, c.MenuKey(restaurantID)).Err()
}
