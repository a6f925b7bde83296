package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cyklo2/autoresponder/internal/config"
)

// Redis wraps the Redis client used for rate-limit counters
type Redis struct {
	*redis.Client
}

// NewRedis creates a new Redis connection
func NewRedis(cfg config.RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Redis{Client: client}, nil
}

// HealthCheck verifies the Redis connection is healthy
func (r *Redis) HealthCheck(ctx context.Context) error {
	return r.Ping(ctx).Err()
}

// IncrCounter increments a counter key and returns its new value
func (r *Redis) IncrCounter(ctx context.Context, key string) (int64, error) {
	return r.Incr(ctx, key).Result()
}

// ExpireKey sets a TTL on a key
func (r *Redis) ExpireKey(ctx context.Context, key string, ttl time.Duration) error {
	return r.Expire(ctx, key, ttl).Err()
}
