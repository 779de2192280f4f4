package service

import (
	"context"
	"sync"
	"testing"

	apperrors "parkify/internal/errors"
	"parkify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDowntownBooking(t *testing.T) {
	env := newTestEnv(t)

	b, err := env.services.Bookings.Create(context.Background(), alice, &models.CreateBookingRequest{
		AreaID:        "area-1",
		SlotID:        "slot-area-1-3",
		TimeSlotID:    "time-1",
		Date:          "2024-06-15",
		VehicleNumber: " ABC-123 ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, 10.0, b.TotalAmount)
	assert.Equal(t, "Downtown Parking", b.AreaName)
	assert.Equal(t, 3, b.SlotNumber)
	assert.Equal(t, "08:00", b.StartTime)
	assert.Equal(t, "10:00", b.EndTime)
	assert.Equal(t, "Regular User", b.UserName)
	assert.Equal(t, "ABC-123", b.VehicleNumber)

	assert.Equal(t, []string{models.EventBookingCreated}, env.publisher.subjects())
	assert.Len(t, env.services.Bookings.ListAll(), 1)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	env := newTestEnv(t)

	a := env.book(t, "area-2", "slot-area-2-1", "time-6", "2024-06-15")
	b := env.book(t, "area-2", "slot-area-2-2", "time-6", "2024-06-15")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 16.0, a.TotalAmount)
	assert.Len(t, env.services.Slots.Available("area-2", "time-6", "2024-06-15"), 98)
}

func TestCreateRejectsHeldSlot(t *testing.T) {
	env := newTestEnv(t)
	env.book(t, "area-1", "slot-area-1-1", "time-1", "2024-06-15")

	_, err := env.services.Bookings.Create(context.Background(), alice, &models.CreateBookingRequest{
		AreaID: "area-1", SlotID: "slot-area-1-1", TimeSlotID: "time-1", Date: "2024-06-15",
	})
	assert.ErrorIs(t, err, apperrors.ErrSlotUnavailable)
	assert.Len(t, env.services.Bookings.ListAll(), 1)
}

func TestConcurrentCreatesOnOneSlot(t *testing.T) {
	env := newTestEnv(t)

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.services.Bookings.Create(context.Background(), alice, &models.CreateBookingRequest{
				AreaID: "area-1", SlotID: "slot-area-1-7", TimeSlotID: "time-3", Date: "2024-06-15",
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, env.services.Bookings.ListAll(), 1)
}

func TestCreateUnknownReferences(t *testing.T) {
	env := newTestEnv(t)

	cases := []models.CreateBookingRequest{
		{AreaID: "area-404", SlotID: "slot-area-1-1", TimeSlotID: "time-1", Date: "2024-06-15"},
		{AreaID: "area-1", SlotID: "slot-area-1-1", TimeSlotID: "time-404", Date: "2024-06-15"},
		{AreaID: "area-1", SlotID: "slot-area-2-1", TimeSlotID: "time-1", Date: "2024-06-15"},
		{AreaID: "area-1", SlotID: "slot-area-1-51", TimeSlotID: "time-1", Date: "2024-06-15"},
	}
	for _, req := range cases {
		req := req
		_, err := env.services.Bookings.Create(context.Background(), alice, &req)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	}
	assert.Empty(t, env.services.Bookings.ListAll())
}

func TestUpdateStatusIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	b := env.book(t, "area-1", "slot-area-1-1", "time-1", "2024-06-15")
	ctx := context.Background()

	first, err := env.services.Bookings.UpdateStatus(ctx, b.ID, models.StatusApproved)
	require.NoError(t, err)
	second, err := env.services.Bookings.UpdateStatus(ctx, b.ID, models.StatusApproved)
	require.NoError(t, err)

	assert.Equal(t, *first, *second)
	assert.Equal(t, b.TotalAmount, second.TotalAmount)
	assert.Equal(t, b.CreatedAt, second.CreatedAt)

	// created + one status change, the repeat publishes nothing
	assert.Equal(t, []string{models.EventBookingCreated, models.EventBookingStatusChanged}, env.publisher.subjects())
}

func TestUpdateStatusUnknownIDIsNoop(t *testing.T) {
	env := newTestEnv(t)
	env.book(t, "area-1", "slot-area-1-1", "time-1", "2024-06-15")
	before := env.services.Bookings.ListAll()

	got, err := env.services.Bookings.UpdateStatus(context.Background(), "booking-missing", models.StatusRejected)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, before, env.services.Bookings.ListAll())
}

func TestUpdateStatusRejectsPending(t *testing.T) {
	env := newTestEnv(t)
	b := env.book(t, "area-1", "slot-area-1-1", "time-1", "2024-06-15")

	_, err := env.services.Bookings.UpdateStatus(context.Background(), b.ID, models.StatusPending)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateIsShallowMerge(t *testing.T) {
	env := newTestEnv(t)
	b := env.book(t, "area-1", "slot-area-1-1", "time-1", "2024-06-15")

	areaID := "area-2"
	vehicle := "XYZ-9"
	got, err := env.services.Bookings.Update(context.Background(), b.ID, models.BookingPatch{
		AreaID:        &areaID,
		VehicleNumber: &vehicle,
	})
	require.NoError(t, err)

	assert.Equal(t, "area-2", got.AreaID)
	assert.Equal(t, "XYZ-9", got.VehicleNumber)
	// snapshots are not re-derived
	assert.Equal(t, "Downtown Parking", got.AreaName)
	assert.Equal(t, 10.0, got.TotalAmount)
	assert.Equal(t, models.StatusPending, got.Status)

	missing, err := env.services.Bookings.Update(context.Background(), "nope", models.BookingPatch{AreaID: &areaID})
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEditRederivesSnapshots(t *testing.T) {
	env := newTestEnv(t)
	b := env.book(t, "area-1", "slot-area-1-1", "time-1", "2024-06-15")

	areaID, slotID, timeSlotID := "area-2", "slot-area-2-9", "time-4"
	got, err := env.services.Bookings.Edit(context.Background(), b.ID, &models.EditBookingRequest{
		AreaID: &areaID, SlotID: &slotID, TimeSlotID: &timeSlotID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Airport Parking", got.AreaName)
	assert.Equal(t, 9, got.SlotNumber)
	assert.Equal(t, "14:00", got.StartTime)
	assert.Equal(t, 16.0, got.TotalAmount)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.CreatedAt, got.CreatedAt)

	assert.Len(t, env.services.Slots.Available("area-1", "time-1", "2024-06-15"), 50)
	assert.Len(t, env.services.Slots.Available("area-2", "time-4", "2024-06-15"), 99)
}

func TestEditRefusesHeldSlot(t *testing.T) {
	env := newTestEnv(t)
	a := env.book(t, "area-1", "slot-area-1-1", "time-1", "2024-06-15")
	env.book(t, "area-1", "slot-area-1-2", "time-1", "2024-06-15")

	slotID := "slot-area-1-2"
	_, err := env.services.Bookings.Edit(context.Background(), a.ID, &models.EditBookingRequest{SlotID: &slotID})
	assert.ErrorIs(t, err, apperrors.ErrSlotUnavailable)

	got, err := env.services.Bookings.Edit(context.Background(), "missing", &models.EditBookingRequest{SlotID: &slotID})
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestApproveRejectedBookingRefusesTakenSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.book(t, "area-1", "slot-area-1-1", "time-1", "2024-06-15")
	_, err := env.services.Bookings.UpdateStatus(ctx, a.ID, models.StatusRejected)
	require.NoError(t, err)

	b := env.book(t, "area-1", "slot-area-1-1", "time-1", "2024-06-15")

	_, err = env.services.Bookings.UpdateStatus(ctx, a.ID, models.StatusApproved)
	assert.ErrorIs(t, err, apperrors.ErrSlotUnavailable)
	assert.Equal(t, models.StatusRejected, env.services.Bookings.Get(a.ID).Status)

	holders := 0
	for _, booking := range env.services.Bookings.ListAll() {
		if booking.Holds("area-1", "time-1", "2024-06-15", "slot-area-1-1") {
			holders++
		}
	}
	assert.Equal(t, 1, holders)

	got, err := env.services.Bookings.UpdateStatus(ctx, b.ID, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
}

func TestEditBookingOnRemovedSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b := env.book(t, "area-1", "slot-area-1-3", "time-1", "2024-06-15")

	total := 1
	_, err := env.services.Areas.Update(ctx, "area-1", &models.UpdateAreaRequest{TotalSlots: &total})
	require.NoError(t, err)

	vehicle := "KZ 123 ABC"
	approved := models.StatusApproved
	got, err := env.services.Bookings.Edit(ctx, b.ID, &models.EditBookingRequest{VehicleNumber: &vehicle, Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, vehicle, got.VehicleNumber)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, "slot-area-1-3", got.SlotID)
	assert.Equal(t, 3, got.SlotNumber)

	slotID := "slot-area-1-2"
	_, err = env.services.Bookings.Edit(ctx, b.ID, &models.EditBookingRequest{SlotID: &slotID})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSearchAndListings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.book(t, "area-1", "slot-area-1-1", "time-1", "2024-06-15")
	b := env.book(t, "area-2", "slot-area-2-1", "time-1", "2024-06-15")
	_, err := env.services.Bookings.UpdateStatus(ctx, b.ID, models.StatusRejected)
	require.NoError(t, err)

	other := models.Actor{UserID: "user-x", Name: "Someone Else", Role: models.RoleUser}
	_, err = env.services.Bookings.Create(ctx, other, &models.CreateBookingRequest{
		AreaID: "area-3", SlotID: "slot-area-3-1", TimeSlotID: "time-1", Date: "2024-06-15", VehicleNumber: "KZ-777",
	})
	require.NoError(t, err)

	assert.Len(t, env.services.Bookings.ListByUser(alice.UserID), 2)
	assert.Empty(t, env.services.Bookings.ListByUser("nobody"))
	assert.Len(t, env.services.Bookings.ListByStatus(models.StatusPending), 2)

	assert.Len(t, env.services.Bookings.Search(models.BookingFilter{Query: "airport"}), 1)
	assert.Len(t, env.services.Bookings.Search(models.BookingFilter{Query: "kz-7"}), 1)
	assert.Len(t, env.services.Bookings.Search(models.BookingFilter{Query: a.ID}), 1)
	assert.Len(t, env.services.Bookings.Search(models.BookingFilter{Query: "regular user", Status: "pending"}), 1)
	assert.Len(t, env.services.Bookings.Search(models.BookingFilter{Status: "all"}), 3)

	assert.True(t, CanView(alice, a))
	assert.False(t, CanView(other, a))
	assert.True(t, CanView(models.Actor{Role: models.RoleAdmin}, a))
}
