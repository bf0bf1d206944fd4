package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shareit-platform/service-booking/internal/application"
	"github.com/shareit-platform/service-booking/internal/platform/response"
)

// RequestHandler handles HTTP requests for item requests.
type RequestHandler struct {
	service *application.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service *application.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// RegisterRoutes registers all item request routes.
func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup, authMW, limitMW gin.HandlerFunc) {
	requests := r.Group("/api/v1/requests")
	requests.Use(authMW)
	{
		requests.POST("", limitMW, h.CreateRequest)
		requests.GET("", h.ListOwn)
		requests.GET("/all", h.ListOthers)
		requests.GET("/:id", h.GetRequest)
	}
}

// CreateRequest handles POST /api/v1/requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRequest(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListOwn handles GET /api/v1/requests.
func (h *RequestHandler) ListOwn(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOthers handles GET /api/v1/requests/all.
func (h *RequestHandler) ListOthers(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	from, size, err := parsePagination(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.ListOthers(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, *result)
}

// GetRequest handles GET /api/v1/requests/:id.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetRequest(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
