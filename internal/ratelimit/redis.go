package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KEYS[1] bucket key
// ARGV[1] refill rate, tokens per second
// ARGV[2] capacity
// ARGV[3] now, unix seconds with microsecond precision
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local state = redis.call("HMGET", key, "tokens", "last_refill")
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if not tokens or not last_refill then
    tokens = capacity
    last_refill = now
end

local elapsed = now - last_refill
if elapsed > 0 then
    tokens = math.min(capacity, tokens + elapsed * rate)
    last_refill = now
end

local allowed = 0
if tokens >= 1 then
    tokens = tokens - 1
    allowed = 1
end

redis.call("HSET", key, "tokens", tokens, "last_refill", last_refill)
redis.call("EXPIRE", key, math.ceil(capacity / rate) + 1)

return allowed
`)

// Limiter is a token bucket per key shared by all service replicas.
type Limiter struct {
	client redis.Scripter
	prefix string
	rate   float64
	burst  int
	now    func() time.Time
}

func NewLimiter(client redis.Scripter, prefix string, perMinute, burst int) *Limiter {
	rate := float64(perMinute) / 60
	if rate <= 0 {
		rate = 1
	}
	return &Limiter{
		client: client,
		prefix: prefix,
		rate:   rate,
		burst:  burst,
		now:    time.Now,
	}
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	now := float64(l.now().UnixMicro()) / 1e6

	allowed, err := tokenBucket.Run(ctx, l.client, []string{l.prefix + ":" + key}, l.rate, l.burst, now).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	return allowed == 1, nil
}
