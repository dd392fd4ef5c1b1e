package handlers

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/OPpuolitaival/recipe-example-app/config"

	"github.com/redis/go-redis/v9"
)

// Fragment queries (search, autocomplete) are cached with a short TTL
// and purged by prefix when recipes or ingredients change.
const fragmentCacheTTL = 60 * time.Second

const (
	searchCachePrefix       = "recipes:search:"
	autocompleteCachePrefix = "ingredients:autocomplete:"
)

// cacheGet loads a cached JSON value into dst. Returns false when
// caching is disabled, the key is absent or the payload is unreadable.
func cacheGet(key string, dst interface{}) bool {
	if config.RDB == nil {
		return false
	}
	raw, err := config.RDB.Get(config.Ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("Redis GET failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Warn("Failed to unmarshal cached value", "key", key, "error", err)
		return false
	}
	return true
}

// cacheSet stores v as JSON under key. Failures are logged, never
// surfaced: the cache is an optimization.
func cacheSet(key string, v interface{}) {
	if config.RDB == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Failed to marshal value for caching", "key", key, "error", err)
		return
	}
	if err := config.RDB.Set(config.Ctx, key, raw, fragmentCacheTTL).Err(); err != nil {
		slog.Error("Redis SET failed", "key", key, "error", err)
	}
}

// cacheInvalidate deletes every cached fragment under the given
// prefixes. Called after a write so readers never see a stale list
// for longer than one in-flight request.
func cacheInvalidate(prefixes ...string) {
	if config.RDB == nil {
		return
	}
	for _, prefix := range prefixes {
		iter := config.RDB.Scan(config.Ctx, 0, prefix+"*", 0).Iterator()
		for iter.Next(config.Ctx) {
			if err := config.RDB.Del(config.Ctx, iter.Val()).Err(); err != nil {
				slog.Warn("Redis DEL failed", "key", iter.Val(), "error", err)
			}
		}
		if err := iter.Err(); err != nil {
			slog.Error("Redis SCAN failed", "prefix", prefix, "error", err)
		}
	}
}
