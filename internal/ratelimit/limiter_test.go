package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shareit-platform/service-booking/internal/platform/middleware"
)

func TestRedisLimiter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	limiter := NewRedisLimiter(client, 2, time.Second)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "user:2")
	require.NoError(t, err)
	assert.True(t, allowed, "keys are counted independently")

	s.FastForward(2 * time.Second)

	allowed, err = limiter.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.True(t, allowed, "window should reset after expiry")
}

func TestRedisLimiter_CounterAlwaysExpires(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	limiter := NewRedisLimiter(client, 1, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.Equal(t, time.Minute, s.TTL("rate_limit:user:1"))
	}

	count, err := s.Get("rate_limit:user:1")
	require.NoError(t, err)
	assert.Equal(t, "3", count)
}

func TestLocalLimiter(t *testing.T) {
	limiter := NewLocalLimiter(0.001, 1)
	ctx := context.Background()

	allowed, _ := limiter.Allow(ctx, "a")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "a")
	assert.False(t, allowed)
	allowed, _ = limiter.Allow(ctx, "b")
	assert.True(t, allowed)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func newRouter(limiter Limiter, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			middleware.SetUserID(c, userID)
		}
		c.Next()
	})
	r.Use(Middleware(limiter, zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestMiddleware(t *testing.T) {
	t.Run("rejects over limit with 429", func(t *testing.T) {
		r := newRouter(NewLocalLimiter(0.001, 1), uuid.New())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("fails open on limiter error", func(t *testing.T) {
		r := newRouter(failingLimiter{}, uuid.Nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
