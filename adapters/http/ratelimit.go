package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/cvhub/pkg/logger"
)

// KEYS[1] counter key, ARGV[1] window in seconds. Returns {count, ttl}.
var rateLimitScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
}

func LoginRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:     5,
		Window:    time.Minute,
		KeyPrefix: "rl:login:",
	}
}

type windowCounter struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests per client IP in redis, and in process memory
// when redis is absent or failing.
type RateLimiter struct {
	cfg    RateLimitConfig
	redis  *redis.Client
	logger logger.Logger

	mu    sync.Mutex
	local map[string]*windowCounter
	now   func() time.Time
}

func NewRateLimiter(cfg RateLimitConfig, client *redis.Client, log logger.Logger) *RateLimiter {
	return &RateLimiter{
		cfg:    cfg,
		redis:  client,
		logger: log,
		local:  make(map[string]*windowCounter),
		now:    time.Now,
	}
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.cfg.KeyPrefix + c.ClientIP()

		count, resetAt := l.hit(c.Request.Context(), key)

		remaining := l.cfg.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > l.cfg.Limit {
			retryAfter := int(resetAt.Sub(l.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "too many requests",
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

func (l *RateLimiter) hit(ctx context.Context, key string) (int, time.Time) {
	if l.redis != nil {
		count, resetAt, err := l.hitRedis(ctx, key)
		if err == nil {
			return count, resetAt
		}
		l.logger.Warn("Rate limiter falling back to memory", zap.Error(err))
	}
	return l.hitLocal(key)
}

func (l *RateLimiter) hitRedis(ctx context.Context, key string) (int, time.Time, error) {
	window := int(l.cfg.Window.Seconds())
	values, err := rateLimitScript.Run(ctx, l.redis, []string{key}, window).Int64Slice()
	if err != nil {
		return 0, time.Time{}, err
	}
	ttl := time.Duration(values[1]) * time.Second
	if ttl < 0 {
		ttl = l.cfg.Window
	}
	return int(values[0]), l.now().Add(ttl), nil
}

func (l *RateLimiter) hitLocal(key string) (int, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, entry := range l.local {
		if now.After(entry.resetAt) {
			delete(l.local, k)
		}
	}

	entry, ok := l.local[key]
	if !ok {
		entry = &windowCounter{resetAt: now.Add(l.cfg.Window)}
		l.local[key] = entry
	}
	entry.count++
	return entry.count, entry.resetAt
}
