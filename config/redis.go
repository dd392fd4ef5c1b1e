package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis initializes the Redis client used for fragment caching.
// Caching is optional: if REDIS_ADDR is unset or the server is not
// reachable, RDB stays nil and every handler falls back to the database.
func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		slog.Warn("REDIS_ADDR is not set, search and autocomplete caching disabled")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("Failed to connect to Redis, caching disabled", "error", err)
		RDB = nil
		return
	}

	slog.Info("Redis connection established", "addr", redisAddr)
}
