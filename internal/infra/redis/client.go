package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
)

// Client wraps Redis operations for the loading subsystem: shared
// localized-data caching and player preferences.
type Client struct {
	rdb *redis.Client
}

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Key helpers
func gameDataKey(languageCode string) string {
	return fmt.Sprintf("game_data:%s", languageCode)
}

func preferenceKey(key string) string {
	return fmt.Sprintf("preferences:%s", key)
}

// GetGameData fetches a cached dataset for a language. The second return
// is false on a miss; Redis handles TTL expiry natively.
func (c *Client) GetGameData(ctx context.Context, languageCode string) (*domain.GameData, bool, error) {
	raw, err := c.rdb.Get(ctx, gameDataKey(languageCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get game data for %s: %w", languageCode, err)
	}

	var data domain.GameData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached game data for %s: %w", languageCode, err)
	}
	return &data, true, nil
}

// SetGameData stores a dataset for a language with the given TTL.
func (c *Client) SetGameData(ctx context.Context, languageCode string, data *domain.GameData, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode game data for %s: %w", languageCode, err)
	}
	if err := c.rdb.Set(ctx, gameDataKey(languageCode), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache game data for %s: %w", languageCode, err)
	}
	return nil
}

// DeleteGameData removes cached datasets for the given languages.
func (c *Client) DeleteGameData(ctx context.Context, languageCodes ...string) error {
	if len(languageCodes) == 0 {
		return nil
	}
	keys := make([]string, 0, len(languageCodes))
	for _, code := range languageCodes {
		keys = append(keys, gameDataKey(code))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate game data: %w", err)
	}
	return nil
}

// FlushGameData removes every cached dataset.
func (c *Client) FlushGameData(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, gameDataKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to flush game data: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan game data keys: %w", err)
	}
	return nil
}

// SetPreference persists a preference value.
func (c *Client) SetPreference(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, preferenceKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set preference %s: %w", key, err)
	}
	return nil
}

// GetPreference returns a persisted preference value. The second return
// is false when the key has never been set.
func (c *Client) GetPreference(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, preferenceKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	return val, true, nil
}
