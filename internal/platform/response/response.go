package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta carries pagination details for list responses.
type Meta struct {
	Total int64 `json:"total"`
	From  int   `json:"from"`
	Size  int   `json:"size"`
}

// Success writes a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// Created writes a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// Paginated writes a 200 list response with pagination metadata.
func Paginated[T any](c *gin.Context, page domain.PaginatedResult[T]) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    page.Items,
		Meta:    &Meta{Total: page.Total, From: page.From, Size: page.Size},
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, APIResponse{Error: message})
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, APIResponse{Error: message})
}

// TooManyRequests writes a 429 response.
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, APIResponse{Error: "rate limit exceeded"})
}

// Error maps err to an HTTP status. Forbidden is reported as 404 so that
// non-participants cannot probe for the existence of a booking or item.
// Errors without a domain code are attached to the gin context for the
// request logger and surfaced as a generic 500.
func Error(c *gin.Context, err error) {
	code, ok := domain.CodeOf(err)
	if !ok {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, APIResponse{Error: "internal server error"})
		return
	}
	c.AbortWithStatusJSON(StatusFor(code), APIResponse{Error: messageOf(err)})
}

// StatusFor returns the HTTP status used for a domain error code.
func StatusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeNotFound, domain.CodeForbidden:
		return http.StatusNotFound
	case domain.CodeValidation, domain.CodeConflict, domain.CodeInvalidState, domain.CodeUnknownState:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
