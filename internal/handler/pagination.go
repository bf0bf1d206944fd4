package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shareit-platform/service-booking/internal/platform/domain"
	"github.com/shareit-platform/service-booking/internal/platform/middleware"
	"github.com/shareit-platform/service-booking/internal/platform/response"
)

// parsePagination reads from and size with defaults 0 and 10. Range checks
// are left to the service so that every entry point reports them the same way.
func parsePagination(c *gin.Context) (from, size int, err error) {
	from, err = intQuery(c, "from", domain.DefaultFrom)
	if err != nil {
		return 0, 0, err
	}
	size, err = intQuery(c, "size", domain.DefaultSize)
	if err != nil {
		return 0, 0, err
	}
	return from, size, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(key + " must be an integer")
	}
	return v, nil
}

// pathID parses a uuid path parameter.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// callerID returns the authenticated user or writes a 401.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domain.NewUnauthorizedError("unauthorized"))
		return uuid.Nil, false
	}
	return userID, true
}
