package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"nexora/internal/model"
)

// SeenCache records which URLs a crawl has already fetched so re-runs
// within the TTL skip them. Keys are hashed so arbitrarily long URLs
// stay within redis key limits.
type SeenCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewSeenCache(client *redisv9.Client, ttl time.Duration) *SeenCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SeenCache{
		client: client,
		ttl:    ttl,
	}
}

// MarkSeen marks the URL as fetched and reports whether this was the
// first time it was seen within the TTL window.
func (c *SeenCache) MarkSeen(ctx context.Context, rawURL string) (bool, error) {
	first, err := c.client.SetNX(ctx, c.seenKey(rawURL), "1", c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis mark seen failed: %w", err)
	}
	return first, nil
}

// Forget drops the seen marker, forcing the next crawl to refetch.
func (c *SeenCache) Forget(ctx context.Context, rawURL string) error {
	if err := c.client.Del(ctx, c.seenKey(rawURL)).Err(); err != nil {
		return fmt.Errorf("redis forget seen failed: %w", err)
	}
	return nil
}

func (c *SeenCache) seenKey(rawURL string) string {
	return "crawl:seen:" + model.HashContent(rawURL)
}
