package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campuscare/models"
	"campuscare/services/booking"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a booking handler.
func NewBookingHandler(service booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Logger: logger}
}

// respondError translates a domain error into its HTTP response.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	status := booking.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error("booking operation failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"success": false, "message": booking.PublicMessage(err)})
}

// parseListQuery reads the shared listing query parameters. It returns
// false after writing the response when the status value is invalid.
func (h *BookingHandler) parseListQuery(c *gin.Context) (models.BookingQuery, bool) {
	q := models.BookingQuery{
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if raw := c.Query("status"); raw != "" && raw != "all" {
		status, ok := models.ParseStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status value"})
			return q, false
		}
		q.Status = status
	}
	return q, true
}

// CreateBooking handles POST /api/bookings. Guests may book without an
// account; authenticated callers are bound as owner.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.BookingCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Create(c.Request.Context(), input, callerFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"booking": resp,
	})
}

// GetMyBookings handles GET /api/bookings/mine.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	q, ok := h.parseListQuery(c)
	if !ok {
		return
	}

	result, err := h.Service.ListMine(c.Request.Context(), q, callerFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"bookings":   result.Bookings,
		"count":      len(result.Bookings),
		"pagination": result.Pagination,
		"statistics": result.Statistics,
	})
}

// GetAllBookings handles GET /api/bookings (admin).
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	q, ok := h.parseListQuery(c)
	if !ok {
		return
	}

	result, err := h.Service.ListAll(c.Request.Context(), q, callerFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"bookings":   result.Bookings,
		"pagination": result.Pagination,
		"statistics": result.Statistics,
	})
}

// GetBookingByID handles GET /api/bookings/:id (owner view).
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	resp, err := h.Service.GetOwned(c.Request.Context(), c.Param("id"), callerFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": resp})
}

// UpdateBookingStatus handles PUT /api/bookings/:id/status (admin).
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	var input models.StatusUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), input, callerFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated successfully",
		"booking": resp,
	})
}

// CancelBooking handles PUT and DELETE /api/bookings/:id (owner or admin).
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var body struct {
		CancellationReason string `json:"cancellationReason"`
	}
	// DELETE requests may carry no body at all.
	_ = c.ShouldBindJSON(&body)

	resp, err := h.Service.Cancel(c.Request.Context(), c.Param("id"), callerFrom(c), body.CancellationReason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
		"booking": resp,
	})
}

// UpdateUserBooking handles PATCH /api/bookings/:id (owner edit of a
// pending booking, limited fields).
func (h *BookingHandler) UpdateUserBooking(c *gin.Context) {
	var input models.OwnedUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.UpdateOwned(c.Request.Context(), c.Param("id"), input, callerFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking updated successfully",
		"booking": resp,
	})
}
