package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shareit-platform/service-booking/internal/application"
	"github.com/shareit-platform/service-booking/internal/platform/response"
)

// ItemHandler handles HTTP requests for items and their comments.
type ItemHandler struct {
	service *application.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *application.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup, authMW, limitMW gin.HandlerFunc) {
	items := r.Group("/api/v1/items")
	items.Use(authMW)
	{
		items.POST("", limitMW, h.CreateItem)
		items.PATCH("/:id", limitMW, h.UpdateItem)
		items.POST("/:id/comment", limitMW, h.AddComment)
		items.GET("", h.ListOwned)
		items.GET("/search", h.Search)
		items.GET("/:id", h.GetItem)
	}
}

// CreateItem handles POST /api/v1/items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateItem(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateItem handles PATCH /api/v1/items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOwned handles GET /api/v1/items.
func (h *ItemHandler) ListOwned(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	from, size, err := parsePagination(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.ListOwned(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, *result)
}

// GetItem handles GET /api/v1/items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Search handles GET /api/v1/items/search?text=.
func (h *ItemHandler) Search(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	from, size, err := parsePagination(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Search(c.Request.Context(), userID, c.Query("text"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, *result)
}

// AddComment handles POST /api/v1/items/:id/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
