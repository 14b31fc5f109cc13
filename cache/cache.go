// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	usageKeyPrefix      = "team_usage:"
	generationKeyPrefix = "team_usage_gen:"
	// DefaultTTL bounds how long a stale list can survive a missed invalidation
	DefaultTTL = 10 * time.Minute
	// generationTTL outlives any single read by a wide margin
	generationTTL = 24 * time.Hour
)

var errStaleGeneration = errors.New("team usage generation changed")

// RedisUsageCache keeps each entry's team usage list as a JSON array.
// Redis failures are logged and treated as misses.
type RedisUsageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisUsageCache connects to the Redis server at url and verifies the
// connection.
func NewRedisUsageCache(ctx context.Context, url string, ttl time.Duration) (*RedisUsageCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewFromClient(rdb, ttl), nil
}

// NewFromClient wraps an existing client. A zero ttl means DefaultTTL.
func NewFromClient(rdb *redis.Client, ttl time.Duration) *RedisUsageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisUsageCache{rdb: rdb, ttl: ttl}
}

// Load returns the cached list, or on a miss the entry's generation for a
// later Store. Any Redis failure is a miss with an unknown generation.
func (c *RedisUsageCache) Load(ctx context.Context, entryID string) ([]string, int64, bool) {
	vals, err := c.rdb.MGet(ctx, usageKey(entryID), generationKey(entryID)).Result()
	if err != nil {
		slog.Warn("team usage cache read failed", "entry_id", entryID, "error", err)
		return nil, -1, false
	}

	var gen int64
	if raw, ok := vals[1].(string); ok {
		gen, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			slog.Warn("team usage generation corrupt", "entry_id", entryID, "error", err)
			return nil, -1, false
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, false
	}

	var teams []string
	if err := json.Unmarshal([]byte(raw), &teams); err != nil {
		slog.Warn("team usage cache entry corrupt", "entry_id", entryID, "error", err)
		return nil, gen, false
	}
	return teams, gen, true
}

// Store writes teams only while the entry's generation still equals gen.
// The check and the write run in one WATCH transaction, so an Invalidate
// landing in between makes the write a no-op.
func (c *RedisUsageCache) Store(ctx context.Context, entryID string, teams []string, gen int64) {
	if gen < 0 {
		return
	}
	raw, err := json.Marshal(teams)
	if err != nil {
		slog.Warn("failed to encode team usage", "entry_id", entryID, "error", err)
		return
	}

	genKey := generationKey(entryID)
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, usageKey(entryID), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		slog.Debug("team usage changed during read, not cached", "entry_id", entryID)
	default:
		slog.Warn("team usage cache write failed", "entry_id", entryID, "error", err)
	}
}

// Invalidate drops the cached list and bumps the entry's generation.
func (c *RedisUsageCache) Invalidate(ctx context.Context, entryID string) {
	genKey := generationKey(entryID)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, usageKey(entryID))
		return nil
	})
	if err != nil {
		slog.Warn("team usage cache invalidation failed", "entry_id", entryID, "error", err)
	}
}

func (c *RedisUsageCache) Close() error {
	return c.rdb.Close()
}

func usageKey(entryID string) string {
	return usageKeyPrefix + entryID
}

func generationKey(entryID string) string {
	return generationKeyPrefix + entryID
}
