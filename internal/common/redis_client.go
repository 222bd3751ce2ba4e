package common

import (
	"context"
	"time"

	"flight-tracker/flightboard/internal/config"
	"flight-tracker/flightboard/internal/logging"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a pooled client for the configured address. A failed
// ping is logged, not returned; the pool keeps retrying in the background.
func NewRedisClient(cfg config.CacheConfig) *redis.Client {
	logging.Info("Initializing Redis client", "addr", cfg.RedisAddr, "db", cfg.RedisDB)

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Warn("Failed to ping Redis", "addr", cfg.RedisAddr, "error", err)
		return client
	}

	logging.Info("Successfully connected to Redis", "addr", cfg.RedisAddr)
	return client
}
