package service

import (
	"context"
	"fmt"

	apperrors "parkify/internal/errors"
	"parkify/internal/models"
	"parkify/internal/pricing"
	"parkify/internal/repository"
)

type TimeSlotService struct {
	timeSlotRepo *repository.TimeSlotRepository
}

func NewTimeSlotService(timeSlotRepo *repository.TimeSlotRepository) *TimeSlotService {
	return &TimeSlotService{timeSlotRepo: timeSlotRepo}
}

func (s *TimeSlotService) List() []models.TimeSlot {
	return s.timeSlotRepo.List()
}

func (s *TimeSlotService) Create(ctx context.Context, req *models.CreateTimeSlotRequest) (*models.TimeSlot, error) {
	if !pricing.Before(req.StartTime, req.EndTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", apperrors.ErrInvalidInput)
	}

	ts, err := s.timeSlotRepo.Create(ctx, models.TimeSlot{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Date:      req.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create time slot: %w", err)
	}
	return ts, nil
}

// Update edits a time slot. Bookings made earlier keep their own copies of
// the times. An unknown id returns (nil, nil).
func (s *TimeSlotService) Update(ctx context.Context, id string, req *models.UpdateTimeSlotRequest) (*models.TimeSlot, error) {
	current := s.timeSlotRepo.GetByID(id)
	if current == nil {
		return nil, nil
	}

	start, end := current.StartTime, current.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if !pricing.Before(start, end) {
		return nil, fmt.Errorf("%w: end time must be after start time", apperrors.ErrInvalidInput)
	}

	ts, err := s.timeSlotRepo.Update(ctx, id, models.TimeSlotPatch{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Date:      req.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update time slot: %w", err)
	}
	return ts, nil
}
