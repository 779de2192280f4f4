package repository

import (
	"fmt"

	"parkify/internal/models"
)

// DefaultAreas returns the areas written on first run.
func DefaultAreas() []models.ParkingArea {
	return []models.ParkingArea{
		{ID: "area-1", Name: "Downtown Parking", Location: "123 Main St", TotalSlots: 50, PricePerHour: 5},
		{ID: "area-2", Name: "Airport Parking", Location: "456 Airport Rd", TotalSlots: 100, PricePerHour: 8},
		{ID: "area-3", Name: "Shopping Mall", Location: "789 Market Ave", TotalSlots: 75, PricePerHour: 3},
	}
}

// DefaultTimeSlots returns the two-hour template windows written on first run.
func DefaultTimeSlots() []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, 6)
	for i, start := 0, 8; start < 20; i, start = i+1, start+2 {
		slots = append(slots, models.TimeSlot{
			ID:        fmt.Sprintf("time-%d", i+1),
			StartTime: fmt.Sprintf("%02d:00", start),
			EndTime:   fmt.Sprintf("%02d:00", start+2),
		})
	}
	return slots
}

// GenerateSlots builds slots 1..area.TotalSlots with ids slot-<areaId>-<n>.
func GenerateSlots(area models.ParkingArea) []models.ParkingSlot {
	if area.TotalSlots <= 0 {
		return nil
	}
	slots := make([]models.ParkingSlot, area.TotalSlots)
	for i := range slots {
		n := i + 1
		slots[i] = models.ParkingSlot{
			ID:          fmt.Sprintf("slot-%s-%d", area.ID, n),
			Number:      n,
			AreaID:      area.ID,
			IsAvailable: true,
		}
	}
	return slots
}
