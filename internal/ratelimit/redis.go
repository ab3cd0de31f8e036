package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter backed by Redis, for
// deployments running more than one server instance.
type RedisLimiter struct {
	client   *redis.Client
	limit    int
	duration time.Duration
	prefix   string
}

// NewRedisLimiter creates a Redis-backed limiter allowing limit
// requests per duration for each key.
func NewRedisLimiter(client *redis.Client, limit int, duration time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{
		client:   client,
		limit:    limit,
		duration: duration,
		prefix:   prefix,
	}
}

// Allow consumes one request for key. INCR and EXPIRE run in a single
// pipeline so the window TTL is set atomically with the first hit.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", r.prefix, key)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, r.duration)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit: redis pipeline: %w", err)
	}

	return incr.Val() <= int64(r.limit), nil
}

var _ Limiter = (*RedisLimiter)(nil)
