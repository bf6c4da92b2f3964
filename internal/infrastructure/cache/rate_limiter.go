package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"paylink/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRateLimitPerWindow = 30
	defaultRateLimitWindow    = time.Minute
)

// RedisRateLimiter is a fixed-window counter backed by redis. The counter
// key embeds the window start, so INCR + EXPIRE keeps the limit correct
// across process restarts and concurrent instances.

type RedisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

var _ interfaces.IRateLimiter = (*RedisRateLimiter)(nil)

// NewRedisRateLimiter connects using CACHE_HOST/CACHE_PORT, with the limit
// tunable via CRM_RATE_LIMIT (requests per minute).
func NewRedisRateLimiter() *RedisRateLimiter {
	host := getenvDefault("CACHE_HOST", "localhost")
	port := getenvDefault("CACHE_PORT", "6379")

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port),
	})

	if pong, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("[ratelimit][cache] warning: could not connect to redis: %v", err)
	} else {
		log.Printf("[ratelimit][cache] connected to redis: %s", pong)
	}

	limit := int64(defaultRateLimitPerWindow)
	if v := os.Getenv("CRM_RATE_LIMIT"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return &RedisRateLimiter{client: client, limit: limit, window: defaultRateLimitWindow}
}

// Allow counts one request against the caller's current window and reports
// whether it fits the limit. Redis errors fail open: the limiter protects
// against abuse, it is not a correctness gate.
func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := time.Now().Truncate(r.window).Unix()
	counterKey := fmt.Sprintf("ratelimit:%s:%d", key, windowStart)

	count, err := r.client.Incr(ctx, counterKey).Result()
	if err != nil {
		log.Printf("[ratelimit][cache] incr failed key=%s err=%v", key, err)
		return true, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, counterKey, r.window).Err(); err != nil {
			log.Printf("[ratelimit][cache] expire failed key=%s err=%v", key, err)
		}
	}
	return count <= r.limit, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
