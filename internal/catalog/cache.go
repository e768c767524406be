package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedSearcher wraps a Searcher with a Redis cache keyed by normalized
// query. Only external catalog responses are cached; user data is never,
// so analytics reads always see the latest writes.
type CachedSearcher struct {
	inner  Searcher
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedSearcher(inner Searcher, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedSearcher {
	return &CachedSearcher{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func searchKey(query string) string {
	return "catalog:search:" + strings.ToLower(strings.TrimSpace(query))
}

func (c *CachedSearcher) Search(ctx context.Context, query string) ([]SearchResult, error) {
	key := searchKey(query)

	if c.client != nil {
		cached, err := c.client.Get(ctx, key).Result()
		switch {
		case err == nil:
			var results []SearchResult
			if err := json.Unmarshal([]byte(cached), &results); err == nil {
				return results, nil
			}
			// Unreadable entry: fall through and refresh it.
		case err != redis.Nil:
			c.logger.Warn("catalog cache read failed", "error", err)
		}
	}

	results, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if c.client != nil {
		payload, err := json.Marshal(results)
		if err != nil {
			return results, nil
		}
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("catalog cache write failed", "error", err)
		}
	}
	return results, nil
}

// NewRedisClient connects to Redis from a redis:// URL; the cache is
// optional, so a failed connection is reported, not fatal.
func NewRedisClient(ctx context.Context, redisURL, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}
