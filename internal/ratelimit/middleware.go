package ratelimit

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shareit-platform/service-booking/internal/platform/middleware"
	"github.com/shareit-platform/service-booking/internal/platform/response"
)

// Middleware rejects callers over their limit with 429. Authenticated
// callers are keyed by user ID, anonymous ones by client IP. Limiter
// errors let the request through.
func Middleware(limiter Limiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID, ok := middleware.GetUserID(c); ok {
			key = "user:" + userID.String()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
