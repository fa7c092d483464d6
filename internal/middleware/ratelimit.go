package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

// Counter increments a fixed-window hit counter and reports the window's
// remaining lifetime.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// RedisCounter keeps rate limit windows in Redis.
type RedisCounter struct {
	rdb *redis.Client
}

// NewRedisCounter creates a Redis-backed Counter.
func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

// Hit implements Counter.
func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}

	// Set expiry on first request in the window
	if count == 1 {
		if err := r.rdb.Expire(ctx, key, window).Err(); err != nil {
			return count, window, err
		}
	}

	ttl, err := r.rdb.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return count, ttl, nil
}

// RateLimiter limits requests per client IP so one browser cannot drain the
// shared TMDB quota.
type RateLimiter struct {
	counter Counter
	maxReqs int
	window  time.Duration
}

// NewRateLimiter creates a rate limiter.
func NewRateLimiter(counter Counter, maxReqs, windowSec int) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		maxReqs: maxReqs,
		window:  time.Duration(windowSec) * time.Second,
	}
}

// Handler returns a Fiber middleware handler for rate limiting.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		key := "ratelimit:" + c.IP()

		count, ttl, err := rl.counter.Hit(c.Context(), key, rl.window)
		if err != nil {
			// fail-open
			slog.Warn("rate limiter unavailable", "error", err)
			return c.Next()
		}

		resetSec := int(ttl.Seconds())
		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.maxReqs))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, int64(rl.maxReqs)-count)))
		c.Set("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > int64(rl.maxReqs) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "rate limit exceeded",
				"retry_after": resetSec,
			})
		}

		return c.Next()
	}
}
