package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// INCR and set the window expiry atomically so a crashed increment cannot
// leave an immortal counter behind.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

const redisOpWindow = 2 * time.Second

// RedisLimiter is a fixed-window limiter shared across bot processes.
type RedisLimiter struct {
	limit  int
	window time.Duration
	prefix string
	client *redis.Client
}

// NewRedisLimiter builds a Redis-backed limiter.
func NewRedisLimiter(addr, password string, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

// Allow consumes one slot for the user. A Redis failure does not count
// against the quota: a degraded limiter must not take the bot down with it.
func (l *RedisLimiter) Allow(userID string) bool {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "unknown"
	}
	windowMs := l.window.Milliseconds()
	slot := time.Now().UTC().UnixMilli() / windowMs
	key := fmt.Sprintf("%s%s:%d", l.prefix, userID, slot)

	ctx, cancel := context.WithTimeout(context.Background(), redisOpWindow)
	defer cancel()
	count, err := fixedWindowScript.Run(ctx, l.client, []string{key}, windowMs).Int64()
	if err != nil {
		return true
	}
	return count <= int64(l.limit)
}

// Close shuts down the client connection pool.
func (l *RedisLimiter) Close() error { return l.client.Close() }
