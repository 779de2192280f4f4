package handlers

import (
	"net/http"

	"parkify/internal/models"

	"github.com/gin-gonic/gin"
)

// Areas handlers

// ListAreas - GET /api/areas
func (h *Handlers) ListAreas(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Areas.List())
}

// CreateArea - POST /api/areas
// Создать парковку вместе с местами
func (h *Handlers) CreateArea(c *gin.Context) {
	var req models.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	area, err := h.services.Areas.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to create parking area")
		return
	}

	c.JSON(http.StatusCreated, area)
}

// UpdateArea - PUT /api/areas/:id
func (h *Handlers) UpdateArea(c *gin.Context) {
	var req models.UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	area, err := h.services.Areas.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to update parking area")
		return
	}
	if area == nil {
		notFound(c, "parking area")
		return
	}

	c.JSON(http.StatusOK, area)
}

// AreaSlots - GET /api/areas/:id/slots
// Все места парковки без учета бронирований
func (h *Handlers) AreaSlots(c *gin.Context) {
	id := c.Param("id")
	if h.services.Areas.Get(id) == nil {
		notFound(c, "parking area")
		return
	}
	c.JSON(http.StatusOK, h.services.Slots.AreaSlots(id))
}

// AvailableSlots - GET /api/slots/available
// Свободные места для парковки, временного окна и даты
func (h *Handlers) AvailableSlots(c *gin.Context) {
	var q models.AvailableSlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, h.services.Slots.Available(q.AreaID, q.TimeSlotID, q.Date))
}

// Time slots handlers

// ListTimeSlots - GET /api/timeslots
func (h *Handlers) ListTimeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.TimeSlots.List())
}

// CreateTimeSlot - POST /api/timeslots
func (h *Handlers) CreateTimeSlot(c *gin.Context) {
	var req models.CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ts, err := h.services.TimeSlots.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to create time slot")
		return
	}

	c.JSON(http.StatusCreated, ts)
}

// UpdateTimeSlot - PUT /api/timeslots/:id
func (h *Handlers) UpdateTimeSlot(c *gin.Context) {
	var req models.UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ts, err := h.services.TimeSlots.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to update time slot")
		return
	}
	if ts == nil {
		notFound(c, "time slot")
		return
	}

	c.JSON(http.StatusOK, ts)
}
