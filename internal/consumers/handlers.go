package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"parkify/internal/models"

	"github.com/nats-io/stan.go"
)

// Indexer keeps the booking search index in sync.
type Indexer interface {
	IndexBooking(ctx context.Context, booking *models.Booking) error
}

// Notifier delivers a user-facing notification. The default one only logs.
type Notifier interface {
	Notify(ctx context.Context, userID, subject, message string) error
}

type logNotifier struct{}

func (logNotifier) Notify(_ context.Context, userID, subject, message string) error {
	slog.Info("Notification", "user_id", userID, "subject", subject, "message", message)
	return nil
}

type Handlers struct {
	indexer  Indexer
	notifier Notifier
	timeout  time.Duration
}

// NewHandlers creates event handlers. A nil indexer skips indexing and a nil
// notifier falls back to logging.
func NewHandlers(indexer Indexer, notifier Notifier) *Handlers {
	if notifier == nil {
		notifier = logNotifier{}
	}
	return &Handlers{
		indexer:  indexer,
		notifier: notifier,
		timeout:  10 * time.Second,
	}
}

// Ack wraps a handler for manual-ack subscriptions. Failed messages are not
// acked and get redelivered after AckWait.
func (h *Handlers) Ack(subject string, handle func(ctx context.Context, data []byte) error) stan.MsgHandler {
	return func(m *stan.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		if err := handle(ctx, m.Data); err != nil {
			slog.Error("Failed to process event",
				"error", err,
				"subject", subject,
				"sequence", m.Sequence,
				"redelivered", m.Redelivered)
			return
		}

		if err := m.Ack(); err != nil {
			slog.Error("Failed to ack message", "error", err, "subject", subject, "sequence", m.Sequence)
		}
	}
}

// Subjects maps every consumed subject to its handler.
func (h *Handlers) Subjects() map[string]func(ctx context.Context, data []byte) error {
	return map[string]func(ctx context.Context, data []byte) error{
		models.EventBookingCreated:       h.HandleBookingCreated,
		models.EventBookingStatusChanged: h.HandleBookingStatusChanged,
		models.EventBookingUpdated:       h.HandleBookingUpdated,
		models.EventUserRegistered:       h.HandleUserRegistered,
	}
}

func (h *Handlers) HandleBookingCreated(ctx context.Context, data []byte) error {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		// Битое сообщение не исправится при повторной доставке
		slog.Error("Failed to unmarshal booking created event", "error", err)
		return nil
	}

	slog.Info("Processing booking created event", "booking_id", event.Booking.ID, "user_id", event.Booking.UserID)

	if err := h.index(ctx, &event.Booking); err != nil {
		return err
	}

	return h.notifier.Notify(ctx, event.Booking.UserID, "Booking received",
		fmt.Sprintf("Slot %d at %s on %s %s-%s is pending approval.",
			event.Booking.SlotNumber, event.Booking.AreaName, event.Booking.Date,
			event.Booking.StartTime, event.Booking.EndTime))
}

func (h *Handlers) HandleBookingStatusChanged(ctx context.Context, data []byte) error {
	var event models.BookingStatusChangedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("Failed to unmarshal booking status changed event", "error", err)
		return nil
	}

	slog.Info("Processing booking status changed event",
		"booking_id", event.Booking.ID,
		"from", event.PreviousStatus,
		"to", event.Booking.Status)

	if err := h.index(ctx, &event.Booking); err != nil {
		return err
	}

	return h.notifier.Notify(ctx, event.Booking.UserID, "Booking "+string(event.Booking.Status),
		fmt.Sprintf("Your booking %s at %s on %s was %s.",
			event.Booking.ID, event.Booking.AreaName, event.Booking.Date, event.Booking.Status))
}

func (h *Handlers) HandleBookingUpdated(ctx context.Context, data []byte) error {
	var event models.BookingUpdatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("Failed to unmarshal booking updated event", "error", err)
		return nil
	}

	slog.Info("Processing booking updated event", "booking_id", event.Booking.ID)
	return h.index(ctx, &event.Booking)
}

func (h *Handlers) HandleUserRegistered(ctx context.Context, data []byte) error {
	var event models.UserRegisteredEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("Failed to unmarshal user registered event", "error", err)
		return nil
	}

	return h.notifier.Notify(ctx, event.UserID, "Welcome to Parkify",
		fmt.Sprintf("Hi %s, your account %s is ready.", event.Name, event.Email))
}

func (h *Handlers) index(ctx context.Context, booking *models.Booking) error {
	if h.indexer == nil {
		return nil
	}
	if err := h.indexer.IndexBooking(ctx, booking); err != nil {
		return fmt.Errorf("failed to index booking %s: %w", booking.ID, err)
	}
	return nil
}
