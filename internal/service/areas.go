package service

import (
	"context"
	"fmt"
	"strings"

	"parkify/internal/models"
	"parkify/internal/repository"
)

type AreaService struct {
	areaRepo *repository.AreaRepository
}

func NewAreaService(areaRepo *repository.AreaRepository) *AreaService {
	return &AreaService{areaRepo: areaRepo}
}

func (s *AreaService) List() []models.ParkingArea {
	return s.areaRepo.List()
}

func (s *AreaService) Get(id string) *models.ParkingArea {
	return s.areaRepo.GetByID(id)
}

// Create adds an area and generates its slots.
func (s *AreaService) Create(ctx context.Context, req *models.CreateAreaRequest) (*models.ParkingArea, error) {
	area, err := s.areaRepo.Create(ctx, models.ParkingArea{
		Name:         strings.TrimSpace(req.Name),
		Location:     strings.TrimSpace(req.Location),
		TotalSlots:   *req.TotalSlots,
		PricePerHour: *req.PricePerHour,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create area: %w", err)
	}
	return area, nil
}

// Update edits an area. Changing TotalSlots discards and regenerates the
// area's slots; existing bookings keep their snapshots. An unknown id
// returns (nil, nil).
func (s *AreaService) Update(ctx context.Context, id string, req *models.UpdateAreaRequest) (*models.ParkingArea, error) {
	area, err := s.areaRepo.Update(ctx, id, models.AreaPatch{
		Name:         req.Name,
		Location:     req.Location,
		TotalSlots:   req.TotalSlots,
		PricePerHour: req.PricePerHour,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update area: %w", err)
	}
	return area, nil
}
