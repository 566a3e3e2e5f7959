package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateLimitPrefix is the Redis key prefix for rate limit windows.
const rateLimitPrefix = "ratelimit:"

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// fixedWindowScript increments the caller's counter for the current window
// and sets the window TTL on first use. Atomic, so concurrent requests
// cannot double-spend the window.
var fixedWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local count = redis.call('INCR', key)
	if count == 1 then
		redis.call('EXPIRE', key, window)
	end

	local ttl = redis.call('TTL', key)
	if count > limit then
		return {0, 0, ttl}
	end
	return {1, limit - count, ttl}
`)

// CheckRateLimit checks and consumes one request from the caller's window.
// The subject is an identity or, pre-auth, a client IP.
func (c *Cache) CheckRateLimit(ctx context.Context, subject string, limit int, window time.Duration) (*RateLimitResult, error) {
	if limit <= 0 {
		return &RateLimitResult{Allowed: true}, nil
	}

	key := rateLimitPrefix + subject
	res, err := fixedWindowScript.Run(ctx, c.client, []string{key},
		limit, int(window.Seconds()),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("rate limit check: unexpected script result %v", res)
	}

	result := &RateLimitResult{
		Allowed:   res[0] == 1,
		Remaining: res[1],
	}
	if !result.Allowed && res[2] > 0 {
		result.RetryAfter = time.Duration(res[2]) * time.Second
	}
	return result, nil
}
