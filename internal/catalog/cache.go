package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/minhngvu/gamedex/internal/platform/constants"
)

// TrendingCache holds short-lived copies of the trending feed in Redis.
//
// The feed is recomputed from PostgreSQL only on cache expiry; every failure
// here is best-effort and falls back to the store.
type TrendingCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewTrendingCache wraps a Redis client into the trending feed cache.
func NewTrendingCache(client *redis.Client, logger *slog.Logger) *TrendingCache {
	return &TrendingCache{client: client, logger: logger}
}

// Get returns the cached feed for the given limit, or ok=false on a miss.
func (c *TrendingCache) Get(ctx context.Context, limit int) ([]*Game, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, trendingKey(limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("trending_cache_read_failed", slog.Any("error", err))
		}
		return nil, false
	}

	var games []*Game
	if err := json.Unmarshal(raw, &games); err != nil {
		c.logger.Warn("trending_cache_decode_failed", slog.Any("error", err))
		return nil, false
	}

	return games, true
}

// Set stores the feed with the standard TTL. Failures are logged, not returned.
func (c *TrendingCache) Set(ctx context.Context, limit int, games []*Game) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(games)
	if err != nil {
		c.logger.Warn("trending_cache_encode_failed", slog.Any("error", err))
		return
	}

	if err := c.client.Set(ctx, trendingKey(limit), raw, constants.TrendingCacheTTL).Err(); err != nil {
		c.logger.Warn("trending_cache_write_failed", slog.Any("error", err))
	}
}

func trendingKey(limit int) string {
	return constants.RedisPrefixTrending + strconv.Itoa(limit)
}
