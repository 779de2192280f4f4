package handlers

import (
	"net/http"

	"parkify/internal/models"
	"parkify/internal/report"

	"github.com/gin-gonic/gin"
)

// Admin handlers

// ListUsers - GET /api/users
func (h *Handlers) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Auth.ListUsers())
}

// Statistics - GET /api/statistics
// Сводка по бронированиям для панели администратора
func (h *Handlers) Statistics(c *gin.Context) {
	stats := h.services.Statistics.Get()
	if h.metrics != nil {
		h.metrics.SetStatistics(stats)
	}
	c.JSON(http.StatusOK, stats)
}

// BookingsReport - GET /api/reports/bookings
func (h *Handlers) BookingsReport(c *gin.Context) {
	var filter models.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	data, err := report.BookingList(h.services.Bookings.Search(filter), h.clock())
	if err != nil {
		handleServiceError(c, err, "Failed to render bookings report")
		return
	}

	writePDF(c, "bookings.pdf", data)
}

// UsersReport - GET /api/reports/users
func (h *Handlers) UsersReport(c *gin.Context) {
	data, err := report.UserList(h.services.Auth.ListUsers(), h.clock())
	if err != nil {
		handleServiceError(c, err, "Failed to render users report")
		return
	}

	writePDF(c, "users.pdf", data)
}
