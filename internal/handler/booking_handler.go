package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shareit-platform/service-booking/internal/application"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
	"github.com/shareit-platform/service-booking/internal/platform/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
// limitMW guards the mutating endpoints.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, authMW, limitMW gin.HandlerFunc) {
	bookings := r.Group("/api/v1/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", limitMW, h.CreateBooking)
		bookings.PATCH("/:id", limitMW, h.DecideBooking)
		bookings.GET("", h.ListForBooker)
		bookings.GET("/owner", h.ListForOwner)
		bookings.GET("/owner/stats", h.OwnerStats)
		bookings.GET("/:id", h.GetBooking)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// DecideBooking handles PATCH /api/v1/bookings/:id?approved=true|false.
func (h *BookingHandler) DecideBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var approve bool
	switch strings.ToLower(c.Query("approved")) {
	case "true":
		approve = true
	case "false":
		approve = false
	default:
		response.Error(c, domain.NewValidationError("approved must be true or false"))
		return
	}

	result, err := h.service.Decide(c.Request.Context(), userID, bookingID, approve)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListForBooker handles GET /api/v1/bookings?state=&from=&size=.
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	from, size, err := parsePagination(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.ListForBooker(c.Request.Context(), userID, c.Query("state"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, *result)
}

// ListForOwner handles GET /api/v1/bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	from, size, err := parsePagination(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.ListForOwner(c.Request.Context(), userID, c.Query("state"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, *result)
}

// OwnerStats handles GET /api/v1/bookings/owner/stats.
func (h *BookingHandler) OwnerStats(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	stats, err := h.service.OwnerStats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
