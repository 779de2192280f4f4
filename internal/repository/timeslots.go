package repository

import (
	"context"
	"sync"

	"parkify/internal/models"
	"parkify/internal/store"

	"github.com/google/uuid"
)

type TimeSlotRepository struct {
	kv store.KV

	mu        sync.RWMutex
	timeSlots []models.TimeSlot
}

func NewTimeSlotRepository(ctx context.Context, kv store.KV) (*TimeSlotRepository, error) {
	var timeSlots []models.TimeSlot
	found, err := store.LoadJSON(ctx, kv, store.KeyTimeSlots, &timeSlots)
	if err != nil {
		return nil, err
	}
	if !found {
		timeSlots = DefaultTimeSlots()
		if err := store.SaveJSON(ctx, kv, store.KeyTimeSlots, timeSlots); err != nil {
			return nil, err
		}
	}
	return &TimeSlotRepository{kv: kv, timeSlots: timeSlots}, nil
}

func (r *TimeSlotRepository) List() []models.TimeSlot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.TimeSlot, len(r.timeSlots))
	copy(out, r.timeSlots)
	return out
}

func (r *TimeSlotRepository) GetByID(id string) *models.TimeSlot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ts := range r.timeSlots {
		if ts.ID == id {
			timeSlot := ts
			return &timeSlot
		}
	}
	return nil
}

func (r *TimeSlotRepository) Create(ctx context.Context, ts models.TimeSlot) (*models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ts.ID == "" {
		ts.ID = "time-" + uuid.New().String()
	}

	next := append(append([]models.TimeSlot(nil), r.timeSlots...), ts)
	if err := store.SaveJSON(ctx, r.kv, store.KeyTimeSlots, next); err != nil {
		return nil, err
	}
	r.timeSlots = next
	return &ts, nil
}

// Update applies patch to the time slot. An unknown id returns (nil, nil).
func (r *TimeSlotRepository) Update(ctx context.Context, id string, patch models.TimeSlotPatch) (*models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ts := range r.timeSlots {
		if ts.ID != id {
			continue
		}

		if patch.StartTime != nil {
			ts.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			ts.EndTime = *patch.EndTime
		}
		if patch.Date != nil {
			ts.Date = *patch.Date
		}

		next := append([]models.TimeSlot(nil), r.timeSlots...)
		next[i] = ts
		if err := store.SaveJSON(ctx, r.kv, store.KeyTimeSlots, next); err != nil {
			return nil, err
		}
		r.timeSlots = next
		return &ts, nil
	}
	return nil, nil
}

// ReplaceAll overwrites the whole collection.
func (r *TimeSlotRepository) ReplaceAll(ctx context.Context, timeSlots []models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := store.SaveJSON(ctx, r.kv, store.KeyTimeSlots, timeSlots); err != nil {
		return err
	}
	r.timeSlots = append([]models.TimeSlot(nil), timeSlots...)
	return nil
}
