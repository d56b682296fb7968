package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript prunes, counts and conditionally records in one round
// trip. Members are unique so simultaneous attempts are all counted.
//
// KEYS[1] window key
// ARGV[1] now (ms), ARGV[2] window (ms), ARGV[3] limit, ARGV[4] member
// Returns {allowed, count, oldest_ms}.
var slidingWindowScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', now - window)
local count = redis.call('ZCARD', KEYS[1])
local allowed = 0
if count < limit then
  redis.call('ZADD', KEYS[1], now, ARGV[4])
  count = count + 1
  allowed = 1
end
redis.call('PEXPIRE', KEYS[1], window)
local oldest = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
local oldestMs = now
if oldest[2] then
  oldestMs = tonumber(oldest[2])
end
return {allowed, count, oldestMs}
`)

// RedisStore keeps each window in a sorted set scored by attempt time.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := s.now()
	res, err := slidingWindowScript.Run(ctx, s.client, []string{key},
		now.UnixMilli(),
		window.Milliseconds(),
		limit,
		strconv.FormatInt(now.UnixNano(), 10)+"-"+uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 3 {
		return Result{}, fmt.Errorf("rate limit script: unexpected reply length %d", len(res))
	}

	allowed, count, oldestMs := res[0] == 1, int(res[1]), res[2]
	result := Result{
		Allowed: allowed,
		Limit:   limit,
		ResetAt: time.UnixMilli(oldestMs).Add(window),
	}
	if allowed {
		result.Remaining = limit - count
	}
	return result, nil
}
