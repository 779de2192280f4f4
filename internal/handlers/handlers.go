package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	apperrors "parkify/internal/errors"
	"parkify/internal/logger"
	"parkify/internal/metrics"
	"parkify/internal/middleware"
	"parkify/internal/models"
	"parkify/internal/pricing"
	"parkify/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Searcher is the full-text booking index. Nil disables /api/search.
type Searcher interface {
	SearchBookings(ctx context.Context, query, status string, page, pageSize int) ([]models.Booking, error)
	Count(ctx context.Context, query, status string) (int64, error)
}

type Handlers struct {
	services *service.Services
	searcher Searcher
	metrics  *metrics.Metrics
	clock    func() time.Time
}

func NewHandlers(services *service.Services, searcher Searcher, m *metrics.Metrics) *Handlers {
	return &Handlers{
		services: services,
		searcher: searcher,
		metrics:  m,
		clock:    time.Now,
	}
}

// ConfigureBinding запрещает неизвестные поля в JSON и добавляет
// в валидатор gin теги hhmm и isodate
func ConfigureBinding() error {
	binding.EnableDecoderDisallowUnknownFields = true

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}

	if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := pricing.ParseHHMM(fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("failed to register hhmm validation: %w", err)
	}

	if err := v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("failed to register isodate validation: %w", err)
	}

	return nil
}

// actor returns the authenticated caller set by middleware.Auth.
func actor(c *gin.Context) (models.Actor, bool) {
	a, ok := middleware.ActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return a, ok
}

// handleServiceError переводит ошибки сервисов в HTTP ответы
func handleServiceError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrInvalidCredentials.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": apperrors.ErrEmailInUse.Error()})
	case errors.Is(err, apperrors.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": apperrors.ErrSlotUnavailable.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error(msg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func badRequest(c *gin.Context, err error) {
	slog.Debug("Rejected request body", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func writePDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
