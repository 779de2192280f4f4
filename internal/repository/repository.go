package repository

import (
	"context"
	"fmt"

	"parkify/internal/store"
)

type Repositories struct {
	Areas     *AreaRepository
	TimeSlots *TimeSlotRepository
	Bookings  *BookingRepository
	Users     *UserRepository
	Sessions  *SessionRepository
}

// NewRepositories loads every collection from kv. Absent area and time slot
// collections are seeded with the defaults.
func NewRepositories(ctx context.Context, kv store.KV) (*Repositories, error) {
	areas, err := NewAreaRepository(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("failed to load areas: %w", err)
	}

	timeSlots, err := NewTimeSlotRepository(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("failed to load time slots: %w", err)
	}

	bookings, err := NewBookingRepository(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	users, err := NewUserRepository(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	return &Repositories{
		Areas:     areas,
		TimeSlots: timeSlots,
		Bookings:  bookings,
		Users:     users,
		Sessions:  NewSessionRepository(kv),
	}, nil
}
