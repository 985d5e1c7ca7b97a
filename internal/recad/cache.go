package recad

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	platformredis "recadastro/internal/platform/redis"
)

// Cache keeps combined resolutions in Redis for a short TTL. Every method is
// nil-receiver safe so the service runs identically with caching disabled; a
// Redis hiccup reads as a miss, never as a failure.
type Cache struct {
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache wraps a Redis client. Returns nil when the client is nil (caching
// not configured).
func NewCache(client *platformredis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func (c *Cache) Get(ctx context.Context, key string) (*CombinedResolution, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var res CombinedResolution
	if err := json.Unmarshal(payload, &res); err != nil {
		c.logger.Debug("resolution cache entry corrupt, ignoring", "key", key, "reason", err.Error())
		return nil, false
	}
	return &res, true
}

func (c *Cache) Set(ctx context.Context, key string, res CombinedResolution) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Debug("resolution cache write failed", "key", key, "reason", err.Error())
	}
}

func cacheKey(login *string, userCode *int) string {
	l, u := "-", "-"
	if login != nil {
		l = *login
	}
	if userCode != nil {
		u = strconv.Itoa(*userCode)
	}
	return "recad:v1:" + l + ":" + u
}
