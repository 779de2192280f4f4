package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"parkify/internal/api"
	"parkify/internal/config"
	apperrors "parkify/internal/errors"
	"parkify/internal/logger"
	"parkify/internal/models"
	"parkify/internal/pricing"
	"parkify/internal/repository"
	"parkify/internal/service"
)

var (
	clearBookings = flag.Bool("clear", false, "Delete all bookings before seeding")
	resetCatalog  = flag.Bool("reset-catalog", false, "Restore the default parking areas and time slots")
	demoBookings  = flag.Int("demo", 0, "Number of random demo bookings to create for the coming week")
	dryRun        = flag.Bool("dry-run", false, "Show what would be changed without making changes")
)

// demoActor books on behalf of the built-in regular user.
var demoActor = models.Actor{UserID: "2", Name: "Regular User", Email: "user@example.com", Role: models.RoleUser}

type Seeder struct {
	repos    *repository.Repositories
	bookings *service.BookingService
	rnd      *rand.Rand
}

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	slog.Info("Starting seeder...", "storage", cfg.StorageBackend, "dry_run", *dryRun)
	if cfg.StorageBackend == "" || cfg.StorageBackend == "memory" {
		slog.Warn("In-memory storage is discarded when the seeder exits")
	}

	kv, closeStore, err := api.OpenStore(cfg)
	if err != nil {
		slog.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	ctx := context.Background()
	repos, err := repository.NewRepositories(ctx, kv)
	if err != nil {
		slog.Error("Failed to load repositories", "error", err)
		os.Exit(1)
	}

	seeder := &Seeder{
		repos:    repos,
		bookings: service.NewBookingService(repos, pricing.NewCalculator(pricing.ParseMode(cfg.PricingMode)), nil, nil),
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := seeder.Run(ctx); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Seeding completed successfully!")
}

func (s *Seeder) Run(ctx context.Context) error {
	if *clearBookings {
		slog.Info("Clearing bookings", "count", len(s.repos.Bookings.List()))
		if !*dryRun {
			if err := s.repos.Bookings.ReplaceAll(ctx, []models.Booking{}); err != nil {
				return fmt.Errorf("failed to clear bookings: %w", err)
			}
		}
	}

	if *resetCatalog {
		areas, timeSlots := repository.DefaultAreas(), repository.DefaultTimeSlots()
		slog.Info("Restoring default catalog", "areas", len(areas), "time_slots", len(timeSlots))
		if !*dryRun {
			if err := s.repos.Areas.ReplaceAll(ctx, areas); err != nil {
				return fmt.Errorf("failed to restore areas: %w", err)
			}
			if err := s.repos.TimeSlots.ReplaceAll(ctx, timeSlots); err != nil {
				return fmt.Errorf("failed to restore time slots: %w", err)
			}
		}
	}

	if *demoBookings > 0 {
		return s.generateBookings(ctx, *demoBookings)
	}
	return nil
}

// generateBookings создает случайные бронирования на ближайшие 7 дней
func (s *Seeder) generateBookings(ctx context.Context, n int) error {
	areas := s.repos.Areas.List()
	timeSlots := s.repos.TimeSlots.List()
	if len(areas) == 0 || len(timeSlots) == 0 {
		return errors.New("no areas or time slots to book")
	}

	created, conflicts := 0, 0
	for i := 0; i < n; i++ {
		area := areas[s.rnd.Intn(len(areas))]
		slots := s.repos.Areas.Slots(area.ID)
		if len(slots) == 0 {
			continue
		}

		req := &models.CreateBookingRequest{
			AreaID:     area.ID,
			SlotID:     slots[s.rnd.Intn(len(slots))].ID,
			TimeSlotID: timeSlots[s.rnd.Intn(len(timeSlots))].ID,
			Date:       time.Now().AddDate(0, 0, s.rnd.Intn(7)).Format(time.DateOnly),
		}

		if *dryRun {
			slog.Info("Would create booking", "area_id", req.AreaID, "slot_id", req.SlotID, "time_slot_id", req.TimeSlotID, "date", req.Date)
			continue
		}

		if _, err := s.bookings.Create(ctx, demoActor, req); err != nil {
			if errors.Is(err, apperrors.ErrSlotUnavailable) {
				conflicts++
				continue
			}
			return err
		}
		created++
	}

	slog.Info("Generated demo bookings", "created", created, "conflicts", conflicts)
	return nil
}
