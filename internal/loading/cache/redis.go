package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
	redisclient "github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/redis"
)

// RedisLocaleCache is a LocaleCache backed by Redis, letting several game
// processes share one localized-data cache. TTL expiry is delegated to
// Redis. A Redis read error is treated as a cache miss so the loader can
// carry on to the network; the error is logged, never surfaced.
type RedisLocaleCache struct {
	client *redisclient.Client
	log    *slog.Logger
}

// NewRedisLocaleCache wraps a connected Redis client.
func NewRedisLocaleCache(client *redisclient.Client, log *slog.Logger) *RedisLocaleCache {
	return &RedisLocaleCache{client: client, log: log}
}

// Get returns the cached dataset for a language, if present.
func (c *RedisLocaleCache) Get(ctx context.Context, languageCode string) (*domain.GameData, bool) {
	data, ok, err := c.client.GetGameData(ctx, languageCode)
	if err != nil {
		c.log.Warn("Redis locale cache read failed, treating as miss",
			"language", languageCode, "error", err)
		return nil, false
	}
	return data, ok
}

// Put stores a dataset under a language code with the given TTL.
func (c *RedisLocaleCache) Put(ctx context.Context, languageCode string, data *domain.GameData, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultLocaleTTL
	}
	return c.client.SetGameData(ctx, languageCode, data, ttl)
}

// Invalidate clears the given languages, or every entry when none given.
func (c *RedisLocaleCache) Invalidate(ctx context.Context, languageCodes ...string) error {
	if len(languageCodes) == 0 {
		return c.client.FlushGameData(ctx)
	}
	return c.client.DeleteGameData(ctx, languageCodes...)
}
