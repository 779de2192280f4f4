package service

import (
	"fmt"
	"time"

	"parkify/internal/metrics"
	"parkify/internal/pricing"
	"parkify/internal/repository"
)

// Publisher sends domain events. Failures are logged by callers, never surfaced.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

type Options struct {
	Publisher Publisher
	Metrics   *metrics.Metrics
	Pricing   *pricing.Calculator
	Auth      AuthOptions
	// Location defines "today" for statistics. Defaults to UTC.
	Location *time.Location
	Clock    func() time.Time
}

type Services struct {
	Slots      *SlotService
	Bookings   *BookingService
	Areas      *AreaService
	TimeSlots  *TimeSlotService
	Statistics *StatisticsService
	Auth       *AuthService
}

func NewServices(repos *repository.Repositories, opts Options) (*Services, error) {
	if opts.Pricing == nil {
		opts.Pricing = pricing.NewCalculator(pricing.ModeMinute)
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	auth, err := NewAuthService(repos.Users, repos.Sessions, opts.Publisher, opts.Auth, opts.Clock)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	return &Services{
		Slots:      NewSlotService(repos.Areas, repos.Bookings),
		Bookings:   NewBookingService(repos, opts.Pricing, opts.Publisher, opts.Metrics),
		Areas:      NewAreaService(repos.Areas),
		TimeSlots:  NewTimeSlotService(repos.TimeSlots),
		Statistics: NewStatisticsService(repos.Bookings, opts.Location, opts.Clock),
		Auth:       auth,
	}, nil
}
