package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether a caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed-window counter shared by every replica.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

// Allow opens the window and counts the request in one MULTI/EXEC, so a
// counter never exists without its expiry.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "rate_limit:" + key
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, redisKey, 0, l.window)
		incr = pipe.Incr(ctx, redisKey)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}
	return incr.Val() <= int64(l.limit), nil
}

// LocalLimiter keeps a token bucket per key in process memory.
type LocalLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
}

func NewLocalLimiter(rps float64, burst int) *LocalLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &LocalLimiter{rps: rate.Limit(rps), burst: burst}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	return l.limiterFor(key).Allow(), nil
}

func (l *LocalLimiter) limiterFor(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	actual, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rps, l.burst))
	return actual.(*rate.Limiter)
}
