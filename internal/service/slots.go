package service

import (
	"parkify/internal/models"
	"parkify/internal/repository"
)

// SlotService answers which slots of an area are free for a time slot on a date.
type SlotService struct {
	areaRepo    *repository.AreaRepository
	bookingRepo *repository.BookingRepository
}

func NewSlotService(areaRepo *repository.AreaRepository, bookingRepo *repository.BookingRepository) *SlotService {
	return &SlotService{areaRepo: areaRepo, bookingRepo: bookingRepo}
}

// Available returns the slots of the area not held by a pending or approved
// booking for the same time slot and date, ordered by slot number.
// An unknown area yields an empty result.
func (s *SlotService) Available(areaID, timeSlotID, date string) []models.ParkingSlot {
	slots := s.areaRepo.Slots(areaID)
	if len(slots) == 0 {
		return []models.ParkingSlot{}
	}

	// held может содержать слоты, удаленные при уменьшении площадки
	held := s.bookingRepo.HeldSlotIDs(areaID, timeSlotID, date)
	available := make([]models.ParkingSlot, 0, len(slots))
	for _, slot := range slots {
		if _, taken := held[slot.ID]; !taken {
			available = append(available, slot)
		}
	}
	return available
}

// AreaSlots returns every slot of the area.
func (s *SlotService) AreaSlots(areaID string) []models.ParkingSlot {
	slots := s.areaRepo.Slots(areaID)
	if slots == nil {
		return []models.ParkingSlot{}
	}
	return slots
}
