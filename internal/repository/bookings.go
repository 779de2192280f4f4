package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "parkify/internal/errors"
	"parkify/internal/models"
	"parkify/internal/store"

	"github.com/google/uuid"
)

// BookingRepository is the single source of truth for slot occupancy.
// Every mutation is written through to the KV before it becomes visible.
type BookingRepository struct {
	kv  store.KV
	now func() time.Time

	mu       sync.RWMutex
	bookings []models.Booking
}

func NewBookingRepository(ctx context.Context, kv store.KV) (*BookingRepository, error) {
	var bookings []models.Booking
	if _, err := store.LoadJSON(ctx, kv, store.KeyBookings, &bookings); err != nil {
		return nil, err
	}
	return &BookingRepository{kv: kv, now: time.Now, bookings: bookings}, nil
}

// SetClock replaces the creation timestamp source.
func (r *BookingRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

func (r *BookingRepository) List() []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out
}

func (r *BookingRepository) GetByID(id string) *models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		b := r.bookings[i]
		return &b
	}
	return nil
}

// GetByUserID returns the user's bookings, newest first.
func (r *BookingRepository) GetByUserID(userID string) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// HeldSlotIDs returns the ids of slots held by pending or approved bookings
// for the given area, time slot and date.
func (r *BookingRepository) HeldSlotIDs(areaID, timeSlotID, date string) map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	held := make(map[string]struct{})
	for _, b := range r.bookings {
		if b.Status.IsActive() && b.AreaID == areaID && b.TimeSlotID == timeSlotID && b.Date == date {
			held[b.SlotID] = struct{}{}
		}
	}
	return held
}

// Reserve assigns id, creation time and pending status to b and appends it,
// unless an active booking already holds the same slot for the same time
// slot and date.
func (r *BookingRepository) Reserve(ctx context.Context, b models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.heldBy(b.AreaID, b.TimeSlotID, b.Date, b.SlotID, "") {
		return nil, apperrors.ErrSlotUnavailable
	}

	b.ID = "booking-" + uuid.New().String()
	b.CreatedAt = r.now().UTC()
	b.Status = models.StatusPending

	next := append(append([]models.Booking(nil), r.bookings...), b)
	if err := store.SaveJSON(ctx, r.kv, store.KeyBookings, next); err != nil {
		return nil, err
	}
	r.bookings = next
	return &b, nil
}

// Update shallow-merges patch into the booking and returns the previous and
// the new version. An unknown id returns (nil, nil, nil).
func (r *BookingRepository) Update(ctx context.Context, id string, patch models.BookingPatch) (before, after *models.Booking, err error) {
	return r.update(ctx, id, patch, false)
}

// Move is Update with a conflict check: the merged booking must not take a
// slot already held by another active booking.
func (r *BookingRepository) Move(ctx context.Context, id string, patch models.BookingPatch) (before, after *models.Booking, err error) {
	return r.update(ctx, id, patch, true)
}

func (r *BookingRepository) update(ctx context.Context, id string, patch models.BookingPatch, checkConflict bool) (*models.Booking, *models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, nil, nil
	}

	prev := r.bookings[i]
	updated := prev
	patch.Apply(&updated)

	if checkConflict && updated.Status.IsActive() &&
		r.heldBy(updated.AreaID, updated.TimeSlotID, updated.Date, updated.SlotID, id) {
		return nil, nil, apperrors.ErrSlotUnavailable
	}

	next := append([]models.Booking(nil), r.bookings...)
	next[i] = updated
	if err := store.SaveJSON(ctx, r.kv, store.KeyBookings, next); err != nil {
		return nil, nil, err
	}
	r.bookings = next
	return &prev, &updated, nil
}

// ReplaceAll overwrites the whole collection.
func (r *BookingRepository) ReplaceAll(ctx context.Context, bookings []models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := store.SaveJSON(ctx, r.kv, store.KeyBookings, bookings); err != nil {
		return err
	}
	r.bookings = append([]models.Booking(nil), bookings...)
	return nil
}

func (r *BookingRepository) indexOf(id string) int {
	for i, b := range r.bookings {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// heldBy must be called with mu held.
func (r *BookingRepository) heldBy(areaID, timeSlotID, date, slotID, exceptID string) bool {
	for _, b := range r.bookings {
		if b.ID != exceptID && b.Holds(areaID, timeSlotID, date, slotID) {
			return true
		}
	}
	return false
}
