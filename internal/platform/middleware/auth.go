package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/platform/auth"
	"github.com/shareit-platform/service-booking/internal/platform/response"
)

const (
	// UserIDHeader is set by the API gateway after it has authenticated the caller.
	UserIDHeader = "X-Sharer-User-Id"

	userIDKey = "user_id"
)

// AuthOption configures AuthMiddleware.
type AuthOption func(*authOptions)

type authOptions struct {
	trustUserHeader bool
}

// WithTrustedUserHeader accepts the gateway's X-Sharer-User-Id header when no bearer token is sent.
func WithTrustedUserHeader(trust bool) AuthOption {
	return func(o *authOptions) { o.trustUserHeader = trust }
}

// AuthMiddleware resolves the caller's user id and stores it on the context.
func AuthMiddleware(jwtManager *auth.JWTManager, opts ...AuthOption) gin.HandlerFunc {
	var o authOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" && o.trustUserHeader {
			userID, err := uuid.Parse(strings.TrimSpace(c.GetHeader(UserIDHeader)))
			if err != nil {
				response.Unauthorized(c, "missing or invalid "+UserIDHeader+" header")
				return
			}
			c.Set(userIDKey, userID)
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Unauthorized(c, "missing or invalid Authorization header")
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}
		userID, err := claims.SubjectID()
		if err != nil {
			response.Unauthorized(c, "invalid token subject")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// SetUserID stores the caller's id on the context.
func SetUserID(c *gin.Context, userID uuid.UUID) {
	c.Set(userIDKey, userID)
}

// GetUserID returns the authenticated caller's id.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
