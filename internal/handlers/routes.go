package handlers

import (
	"parkify/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes настраивает все API роуты
func (h *Handlers) RegisterRoutes(r gin.IRouter, auth middleware.Authenticator) {
	api := r.Group("/api")

	// Auth endpoints
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", middleware.Auth(auth), h.Logout)
		authGroup.GET("/me", middleware.Auth(auth), h.Me)
	}

	// Все остальные роуты требуют Bearer токен
	protected := api.Group("", middleware.Auth(auth))
	admin := middleware.RequireAdmin()

	// Areas endpoints
	areas := protected.Group("/areas")
	{
		areas.GET("", h.ListAreas)
		areas.GET("/:id/slots", h.AreaSlots)
		areas.POST("", admin, h.CreateArea)
		areas.PUT("/:id", admin, h.UpdateArea)
	}

	// Time slots endpoints
	timeSlots := protected.Group("/timeslots")
	{
		timeSlots.GET("", h.ListTimeSlots)
		timeSlots.POST("", admin, h.CreateTimeSlot)
		timeSlots.PUT("/:id", admin, h.UpdateTimeSlot)
	}

	protected.GET("/slots/available", h.AvailableSlots)

	// Bookings endpoints
	bookings := protected.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/receipt", h.BookingReceipt)
		bookings.PUT("/:id", admin, h.EditBooking)
		bookings.PATCH("/:id/status", admin, h.UpdateBookingStatus)
	}

	// Admin endpoints
	protected.GET("/users", admin, h.ListUsers)
	protected.GET("/statistics", admin, h.Statistics)
	protected.GET("/search/bookings", admin, h.SearchBookings)

	reports := protected.Group("/reports", admin)
	{
		reports.GET("/bookings", h.BookingsReport)
		reports.GET("/users", h.UsersReport)
	}
}
