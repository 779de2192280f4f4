package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "parkify/internal/errors"
	"parkify/internal/logger"
	"parkify/internal/metrics"
	"parkify/internal/models"
	"parkify/internal/pricing"
	"parkify/internal/repository"
)

type BookingService struct {
	bookingRepo  *repository.BookingRepository
	areaRepo     *repository.AreaRepository
	timeSlotRepo *repository.TimeSlotRepository
	pricing      *pricing.Calculator
	publisher    Publisher
	metrics      *metrics.Metrics
}

func NewBookingService(repos *repository.Repositories, calc *pricing.Calculator, publisher Publisher, m *metrics.Metrics) *BookingService {
	return &BookingService{
		bookingRepo:  repos.Bookings,
		areaRepo:     repos.Areas,
		timeSlotRepo: repos.TimeSlots,
		pricing:      calc,
		publisher:    publisher,
		metrics:      m,
	}
}

// Create books a slot for the actor. The new booking is pending and priced
// from the area's hourly rate and the time slot window.
func (s *BookingService) Create(ctx context.Context, actor models.Actor, req *models.CreateBookingRequest) (*models.Booking, error) {
	area, timeSlot, slot, err := s.resolve(req.AreaID, req.TimeSlotID, req.SlotID)
	if err != nil {
		return nil, err
	}

	amount, err := s.pricing.Price(area.PricePerHour, timeSlot.StartTime, timeSlot.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to price booking: %w", err)
	}

	booking, err := s.bookingRepo.Reserve(ctx, models.Booking{
		UserID:        actor.UserID,
		UserName:      actor.Name,
		AreaID:        area.ID,
		AreaName:      area.Name,
		SlotID:        slot.ID,
		SlotNumber:    slot.Number,
		TimeSlotID:    timeSlot.ID,
		StartTime:     timeSlot.StartTime,
		EndTime:       timeSlot.EndTime,
		Date:          req.Date,
		TotalAmount:   amount,
		VehicleNumber: strings.TrimSpace(req.VehicleNumber),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrSlotUnavailable) && s.metrics != nil {
			s.metrics.BookingConflict()
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingCreated()
	}

	logger.WithContext(ctx).Info("Booking created",
		"booking_id", booking.ID,
		"area_id", booking.AreaID,
		"slot_id", booking.SlotID,
		"date", booking.Date)

	s.publish(ctx, models.EventBookingCreated, models.BookingCreatedEvent{
		Booking:   *booking,
		Timestamp: time.Now(),
	})

	return booking, nil
}

// UpdateStatus approves or rejects a booking. Repeating the same status is a
// no-op change. An unknown id returns (nil, nil). Approving a booking whose slot
// is held by another active booking fails with ErrSlotUnavailable.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", apperrors.ErrInvalidInput)
	}

	// Approving a previously rejected booking must not take a slot reserved since.
	before, after, err := s.bookingRepo.Move(ctx, id, models.BookingPatch{Status: &status})
	if err != nil {
		if errors.Is(err, apperrors.ErrSlotUnavailable) && s.metrics != nil {
			s.metrics.BookingConflict()
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if after == nil {
		return nil, nil
	}

	if before.Status != after.Status {
		if s.metrics != nil {
			s.metrics.StatusChanged(after.Status)
		}
		s.publish(ctx, models.EventBookingStatusChanged, models.BookingStatusChangedEvent{
			Booking:        *after,
			PreviousStatus: before.Status,
			Timestamp:      time.Now(),
		})
	}

	return after, nil
}

// Update shallow-merges patch into the booking without re-deriving any
// denormalized field. An unknown id returns (nil, nil).
func (s *BookingService) Update(ctx context.Context, id string, patch models.BookingPatch) (*models.Booking, error) {
	_, after, err := s.bookingRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	if after == nil {
		return nil, nil
	}

	s.publish(ctx, models.EventBookingUpdated, models.BookingUpdatedEvent{
		Booking:   *after,
		Timestamp: time.Now(),
	})
	return after, nil
}

// Edit is the admin edit flow: it resolves the target area, time slot and
// slot, refreshes names, times and price, and refuses to move the booking
// onto a slot held by another booking. An unknown id returns (nil, nil).
func (s *BookingService) Edit(ctx context.Context, id string, req *models.EditBookingRequest) (*models.Booking, error) {
	current := s.bookingRepo.GetByID(id)
	if current == nil {
		return nil, nil
	}

	areaID, timeSlotID, slotID := current.AreaID, current.TimeSlotID, current.SlotID
	if req.AreaID != nil {
		areaID = *req.AreaID
	}
	if req.TimeSlotID != nil {
		timeSlotID = *req.TimeSlotID
	}
	if req.SlotID != nil {
		slotID = *req.SlotID
	}

	var (
		area     *models.ParkingArea
		timeSlot *models.TimeSlot
		slot     *models.ParkingSlot
		err      error
	)
	if areaID == current.AreaID && slotID == current.SlotID {
		// The booked slot may be gone after the area shrank; keep its snapshot.
		area, timeSlot, err = s.resolveSchedule(areaID, timeSlotID)
		if err != nil {
			return nil, err
		}
		slot = s.areaRepo.GetSlot(areaID, slotID)
		if slot == nil {
			slot = &models.ParkingSlot{ID: current.SlotID, AreaID: current.AreaID, Number: current.SlotNumber}
		}
	} else {
		area, timeSlot, slot, err = s.resolve(areaID, timeSlotID, slotID)
		if err != nil {
			return nil, err
		}
	}

	amount, err := s.pricing.Price(area.PricePerHour, timeSlot.StartTime, timeSlot.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to price booking: %w", err)
	}

	patch := models.BookingPatch{
		AreaID:        &area.ID,
		AreaName:      &area.Name,
		SlotID:        &slot.ID,
		SlotNumber:    &slot.Number,
		TimeSlotID:    &timeSlot.ID,
		StartTime:     &timeSlot.StartTime,
		EndTime:       &timeSlot.EndTime,
		TotalAmount:   &amount,
		Date:          req.Date,
		VehicleNumber: req.VehicleNumber,
		Status:        req.Status,
	}

	before, after, err := s.bookingRepo.Move(ctx, id, patch)
	if err != nil {
		if errors.Is(err, apperrors.ErrSlotUnavailable) && s.metrics != nil {
			s.metrics.BookingConflict()
		}
		return nil, fmt.Errorf("failed to edit booking: %w", err)
	}
	if after == nil {
		return nil, nil
	}

	if before.Status != after.Status && s.metrics != nil {
		s.metrics.StatusChanged(after.Status)
	}
	s.publish(ctx, models.EventBookingUpdated, models.BookingUpdatedEvent{
		Booking:   *after,
		Timestamp: time.Now(),
	})
	return after, nil
}

func (s *BookingService) Get(id string) *models.Booking {
	return s.bookingRepo.GetByID(id)
}

// ListByUser returns the user's own bookings, newest first.
func (s *BookingService) ListByUser(userID string) []models.Booking {
	bookings := s.bookingRepo.GetByUserID(userID)
	if bookings == nil {
		return []models.Booking{}
	}
	return bookings
}

func (s *BookingService) ListAll() []models.Booking {
	return s.bookingRepo.List()
}

func (s *BookingService) ListByStatus(status models.BookingStatus) []models.Booking {
	return s.Search(models.BookingFilter{Status: string(status)})
}

// Search filters all bookings by status and by a case-insensitive substring
// of user name, area name, id or vehicle number.
func (s *BookingService) Search(filter models.BookingFilter) []models.Booking {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	status := strings.ToLower(filter.Status)

	out := []models.Booking{}
	for _, b := range s.bookingRepo.List() {
		if status != "" && status != "all" && string(b.Status) != status {
			continue
		}
		if query != "" && !matchesQuery(b, query) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesQuery(b models.Booking, query string) bool {
	for _, field := range []string{b.UserName, b.AreaName, b.ID, b.VehicleNumber} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// CanView reports whether the actor may read the booking.
func CanView(actor models.Actor, b *models.Booking) bool {
	return actor.IsAdmin() || b.UserID == actor.UserID
}

func (s *BookingService) resolve(areaID, timeSlotID, slotID string) (*models.ParkingArea, *models.TimeSlot, *models.ParkingSlot, error) {
	area, timeSlot, err := s.resolveSchedule(areaID, timeSlotID)
	if err != nil {
		return nil, nil, nil, err
	}
	slot := s.areaRepo.GetSlot(areaID, slotID)
	if slot == nil {
		return nil, nil, nil, fmt.Errorf("%w: slot %s in area %s", apperrors.ErrNotFound, slotID, areaID)
	}
	return area, timeSlot, slot, nil
}

func (s *BookingService) resolveSchedule(areaID, timeSlotID string) (*models.ParkingArea, *models.TimeSlot, error) {
	area := s.areaRepo.GetByID(areaID)
	if area == nil {
		return nil, nil, fmt.Errorf("%w: parking area %s", apperrors.ErrNotFound, areaID)
	}
	timeSlot := s.timeSlotRepo.GetByID(timeSlotID)
	if timeSlot == nil {
		return nil, nil, fmt.Errorf("%w: time slot %s", apperrors.ErrNotFound, timeSlotID)
	}
	return area, timeSlot, nil
}

func (s *BookingService) publish(ctx context.Context, subject string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(subject, event); err != nil {
		// Log error but don't fail the operation
		logger.WithContext(ctx).Error("Failed to publish event",
			"error", err,
			"event_type", subject)
	}
}
