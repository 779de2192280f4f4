package handlers

import (
	"net/http"

	"parkify/internal/models"

	"github.com/gin-gonic/gin"
)

// Register - POST /api/auth/register
// Зарегистрировать пользователя и открыть сессию
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	response, err := h.services.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to register")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login - POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	response, err := h.services.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout - POST /api/auth/logout
// Закрыть текущую сессию, ответ без тела
func (h *Handlers) Logout(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), a.SessionID); err != nil {
		handleServiceError(c, err, "Failed to logout")
		return
	}

	c.Status(http.StatusNoContent)
}

// Me - GET /api/auth/me
func (h *Handlers) Me(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, a)
}
