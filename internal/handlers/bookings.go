package handlers

import (
	"net/http"
	"strconv"

	"parkify/internal/models"
	"parkify/internal/report"
	"parkify/internal/service"

	"github.com/gin-gonic/gin"
)

// Bookings handlers

// CreateBooking - POST /api/bookings
// Создать бронирование от имени текущего пользователя
func (h *Handlers) CreateBooking(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.services.Bookings.Create(c.Request.Context(), a, &req)
	if err != nil {
		handleServiceError(c, err, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListBookings - GET /api/bookings
// Пользователь видит свои бронирования, администратор все с фильтрами
func (h *Handlers) ListBookings(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	if !a.IsAdmin() {
		c.JSON(http.StatusOK, h.services.Bookings.ListByUser(a.UserID))
		return
	}

	var filter models.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, h.services.Bookings.Search(filter))
}

// GetBooking - GET /api/bookings/:id
func (h *Handlers) GetBooking(c *gin.Context) {
	booking, ok := h.visibleBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, booking)
}

// EditBooking - PUT /api/bookings/:id
// Редактирование бронирования администратором
func (h *Handlers) EditBooking(c *gin.Context) {
	var req models.EditBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.services.Bookings.Edit(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to edit booking")
		return
	}
	if booking == nil {
		notFound(c, "booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBookingStatus - PATCH /api/bookings/:id/status
// Одобрить или отклонить бронирование
func (h *Handlers) UpdateBookingStatus(c *gin.Context) {
	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booking, err := h.services.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleServiceError(c, err, "Failed to update booking status")
		return
	}
	if booking == nil {
		notFound(c, "booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// BookingReceipt - GET /api/bookings/:id/receipt
// PDF квитанция с QR кодом бронирования
func (h *Handlers) BookingReceipt(c *gin.Context) {
	booking, ok := h.visibleBooking(c)
	if !ok {
		return
	}

	data, err := report.BookingReceipt(*booking)
	if err != nil {
		handleServiceError(c, err, "Failed to render receipt")
		return
	}

	writePDF(c, "booking-"+booking.ID+".pdf", data)
}

// SearchBookings - GET /api/search/bookings
// Полнотекстовый поиск по индексу Elasticsearch
func (h *Handlers) SearchBookings(c *gin.Context) {
	if h.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is disabled"})
		return
	}

	var filter models.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}
	if pageSize < 1 || pageSize > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 100"})
		return
	}

	bookings, err := h.searcher.SearchBookings(c.Request.Context(), filter.Query, filter.Status, page, pageSize)
	if err != nil {
		handleServiceError(c, err, "Failed to search bookings")
		return
	}

	total, err := h.searcher.Count(c.Request.Context(), filter.Query, filter.Status)
	if err != nil {
		handleServiceError(c, err, "Failed to count bookings")
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, bookings)
}

// visibleBooking loads :id and enforces that users only read their own bookings.
// Another user's booking is reported as missing.
func (h *Handlers) visibleBooking(c *gin.Context) (*models.Booking, bool) {
	a, ok := actor(c)
	if !ok {
		return nil, false
	}

	booking := h.services.Bookings.Get(c.Param("id"))
	if booking == nil || !service.CanView(a, booking) {
		notFound(c, "booking")
		return nil, false
	}
	return booking, true
}
