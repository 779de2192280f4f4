package service

import (
	"time"

	"parkify/internal/models"
	"parkify/internal/repository"
)

const isoDate = "2006-01-02"

type StatisticsService struct {
	bookingRepo *repository.BookingRepository
	location    *time.Location
	clock       func() time.Time
}

func NewStatisticsService(bookingRepo *repository.BookingRepository, loc *time.Location, clock func() time.Time) *StatisticsService {
	return &StatisticsService{bookingRepo: bookingRepo, location: loc, clock: clock}
}

// Get aggregates the current booking collection.
func (s *StatisticsService) Get() models.Statistics {
	return ComputeStatistics(s.bookingRepo.List(), s.clock().In(s.location))
}

// ComputeStatistics counts bookings by status, by booking date over the 7
// days ending on now's date, and by booking month over the 12 months ending
// with now's month. Buckets are oldest first. Unparseable dates count only
// toward the status totals.
func ComputeStatistics(bookings []models.Booking, now time.Time) models.Statistics {
	stats := models.Statistics{
		Total:   len(bookings),
		ByDay:   make([]models.DayCount, 7),
		ByMonth: make([]models.MonthCount, 12),
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayIndex := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		d := today.AddDate(0, 0, i-6).Format(isoDate)
		stats.ByDay[i] = models.DayCount{Date: d}
		dayIndex[d] = i
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthIndex := make(map[monthKey]int, 12)
	for i := 0; i < 12; i++ {
		m := firstOfMonth.AddDate(0, i-11, 0)
		stats.ByMonth[i] = models.MonthCount{
			Year:  m.Year(),
			Month: int(m.Month()),
			Label: m.Format("Jan 06"),
		}
		monthIndex[monthKey{m.Year(), m.Month()}] = i
	}

	for _, b := range bookings {
		switch b.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusRejected:
			stats.Rejected++
		}

		if i, ok := dayIndex[b.Date]; ok {
			stats.ByDay[i].Count++
		}

		d, err := time.Parse(isoDate, b.Date)
		if err != nil {
			continue
		}
		if i, ok := monthIndex[monthKey{d.Year(), d.Month()}]; ok {
			stats.ByMonth[i].Count++
		}
	}

	return stats
}
