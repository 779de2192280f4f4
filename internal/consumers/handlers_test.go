package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"parkify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndexer struct {
	indexed []models.Booking
	err     error
}

func (f *fakeIndexer) IndexBooking(_ context.Context, b *models.Booking) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, *b)
	return nil
}

type notification struct {
	userID, subject, message string
}

type fakeNotifier struct {
	sent []notification
}

func (f *fakeNotifier) Notify(_ context.Context, userID, subject, message string) error {
	f.sent = append(f.sent, notification{userID, subject, message})
	return nil
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

var sampleBooking = models.Booking{
	ID:         "booking-1",
	UserID:     "2",
	AreaName:   "Downtown Parking",
	SlotNumber: 3,
	Date:       "2024-06-15",
	StartTime:  "08:00",
	EndTime:    "10:00",
	Status:     models.StatusPending,
}

func TestHandleBookingCreatedIndexesAndNotifies(t *testing.T) {
	idx, notifier := &fakeIndexer{}, &fakeNotifier{}
	h := NewHandlers(idx, notifier)

	data := mustJSON(t, models.BookingCreatedEvent{Booking: sampleBooking, Timestamp: time.Now()})
	require.NoError(t, h.HandleBookingCreated(context.Background(), data))

	require.Len(t, idx.indexed, 1)
	assert.Equal(t, "booking-1", idx.indexed[0].ID)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "2", notifier.sent[0].userID)
	assert.Contains(t, notifier.sent[0].message, "Slot 3 at Downtown Parking")
}

func TestHandleStatusChangedNotifiesNewStatus(t *testing.T) {
	idx, notifier := &fakeIndexer{}, &fakeNotifier{}
	h := NewHandlers(idx, notifier)

	approved := sampleBooking
	approved.Status = models.StatusApproved
	data := mustJSON(t, models.BookingStatusChangedEvent{Booking: approved, PreviousStatus: models.StatusPending})

	require.NoError(t, h.HandleBookingStatusChanged(context.Background(), data))
	assert.Equal(t, models.StatusApproved, idx.indexed[0].Status)
	assert.Equal(t, "Booking approved", notifier.sent[0].subject)
}

func TestIndexFailureIsReturnedForRedelivery(t *testing.T) {
	idx := &fakeIndexer{err: errors.New("es unavailable")}
	notifier := &fakeNotifier{}
	h := NewHandlers(idx, notifier)

	data := mustJSON(t, models.BookingUpdatedEvent{Booking: sampleBooking})
	assert.ErrorContains(t, h.HandleBookingUpdated(context.Background(), data), "booking-1")
	assert.Empty(t, notifier.sent)
}

func TestMalformedPayloadIsDropped(t *testing.T) {
	h := NewHandlers(&fakeIndexer{}, &fakeNotifier{})

	for subject, handle := range h.Subjects() {
		assert.NoError(t, handle(context.Background(), []byte("{not json")), subject)
	}
}

func TestNilIndexerSkipsIndexing(t *testing.T) {
	notifier := &fakeNotifier{}
	h := NewHandlers(nil, notifier)

	data := mustJSON(t, models.UserRegisteredEvent{UserID: "user-1", Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, h.HandleUserRegistered(context.Background(), data))
	assert.Contains(t, notifier.sent[0].message, "dana@example.com")

	data = mustJSON(t, models.BookingUpdatedEvent{Booking: sampleBooking})
	assert.NoError(t, h.HandleBookingUpdated(context.Background(), data))
}

func TestSubjectsCoverPublishedEvents(t *testing.T) {
	subjects := NewHandlers(nil, nil).Subjects()
	for _, s := range []string{
		models.EventBookingCreated,
		models.EventBookingStatusChanged,
		models.EventBookingUpdated,
		models.EventUserRegistered,
	} {
		assert.Contains(t, subjects, s)
	}
}
