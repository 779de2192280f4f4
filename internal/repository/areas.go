package repository

import (
	"context"
	"sync"

	"parkify/internal/models"
	"parkify/internal/store"

	"github.com/google/uuid"
)

// AreaRepository owns parking areas and the slots derived from them.
type AreaRepository struct {
	kv store.KV

	mu    sync.RWMutex
	areas []models.ParkingArea
	slots map[string][]models.ParkingSlot
}

func NewAreaRepository(ctx context.Context, kv store.KV) (*AreaRepository, error) {
	r := &AreaRepository{kv: kv, slots: make(map[string][]models.ParkingSlot)}

	var areas []models.ParkingArea
	found, err := store.LoadJSON(ctx, kv, store.KeyAreas, &areas)
	if err != nil {
		return nil, err
	}
	if !found {
		areas = DefaultAreas()
		if err := store.SaveJSON(ctx, kv, store.KeyAreas, areas); err != nil {
			return nil, err
		}
	}

	r.areas = areas
	for _, a := range areas {
		r.slots[a.ID] = GenerateSlots(a)
	}
	return r, nil
}

func (r *AreaRepository) List() []models.ParkingArea {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ParkingArea, len(r.areas))
	copy(out, r.areas)
	return out
}

func (r *AreaRepository) GetByID(id string) *models.ParkingArea {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.areas {
		if a.ID == id {
			area := a
			return &area
		}
	}
	return nil
}

// Slots returns the slots of an area ordered by number; nil for unknown areas.
func (r *AreaRepository) Slots(areaID string) []models.ParkingSlot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots, ok := r.slots[areaID]
	if !ok {
		return nil
	}
	out := make([]models.ParkingSlot, len(slots))
	copy(out, slots)
	return out
}

func (r *AreaRepository) GetSlot(areaID, slotID string) *models.ParkingSlot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.slots[areaID] {
		if s.ID == slotID {
			slot := s
			return &slot
		}
	}
	return nil
}

func (r *AreaRepository) Create(ctx context.Context, area models.ParkingArea) (*models.ParkingArea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if area.ID == "" {
		area.ID = "area-" + uuid.New().String()
	}

	next := append(append([]models.ParkingArea(nil), r.areas...), area)
	if err := store.SaveJSON(ctx, r.kv, store.KeyAreas, next); err != nil {
		return nil, err
	}

	r.areas = next
	r.slots[area.ID] = GenerateSlots(area)
	return &area, nil
}

// Update applies patch to the area. Slots are regenerated when TotalSlots
// changes. An unknown id returns (nil, nil).
func (r *AreaRepository) Update(ctx context.Context, id string, patch models.AreaPatch) (*models.ParkingArea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, a := range r.areas {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	updated := r.areas[idx]
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Location != nil {
		updated.Location = *patch.Location
	}
	if patch.TotalSlots != nil {
		updated.TotalSlots = *patch.TotalSlots
	}
	if patch.PricePerHour != nil {
		updated.PricePerHour = *patch.PricePerHour
	}

	next := append([]models.ParkingArea(nil), r.areas...)
	next[idx] = updated
	if err := store.SaveJSON(ctx, r.kv, store.KeyAreas, next); err != nil {
		return nil, err
	}

	if updated.TotalSlots != r.areas[idx].TotalSlots {
		r.slots[id] = GenerateSlots(updated)
	}
	r.areas = next
	return &updated, nil
}

// ReplaceAll overwrites the whole collection.
func (r *AreaRepository) ReplaceAll(ctx context.Context, areas []models.ParkingArea) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := store.SaveJSON(ctx, r.kv, store.KeyAreas, areas); err != nil {
		return err
	}

	r.areas = append([]models.ParkingArea(nil), areas...)
	r.slots = make(map[string][]models.ParkingSlot, len(areas))
	for _, a := range areas {
		r.slots[a.ID] = GenerateSlots(a)
	}
	return nil
}
