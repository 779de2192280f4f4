package service

import (
	"context"
	"testing"
	"time"

	"parkify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatisticsStatusTotals(t *testing.T) {
	bookings := []models.Booking{
		{Status: models.StatusPending, Date: "2024-06-15"},
		{Status: models.StatusApproved, Date: "2024-06-14"},
		{Status: models.StatusApproved, Date: "2024-06-09"},
		{Status: models.StatusRejected, Date: "2024-06-08"},
	}

	stats := ComputeStatistics(bookings, fixedNow)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.Approved)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, stats.Total, stats.Pending+stats.Approved+stats.Rejected)
}

func TestComputeStatisticsByDay(t *testing.T) {
	bookings := []models.Booking{
		{Status: models.StatusPending, Date: "2024-06-15"},
		{Status: models.StatusPending, Date: "2024-06-15"},
		{Status: models.StatusApproved, Date: "2024-06-09"},
		{Status: models.StatusApproved, Date: "2024-06-08"},
		{Status: models.StatusApproved, Date: "2024-6-15"},
	}

	stats := ComputeStatistics(bookings, fixedNow)

	require.Len(t, stats.ByDay, 7)
	assert.Equal(t, "2024-06-09", stats.ByDay[0].Date)
	assert.Equal(t, 1, stats.ByDay[0].Count)
	assert.Equal(t, "2024-06-15", stats.ByDay[6].Date)
	assert.Equal(t, 2, stats.ByDay[6].Count)

	sum := 0
	for _, d := range stats.ByDay {
		sum += d.Count
	}
	assert.Equal(t, 3, sum)
}

func TestComputeStatisticsByMonthKeysOnYear(t *testing.T) {
	now := time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{Status: models.StatusApproved, Date: "2024-01-05"},
		{Status: models.StatusApproved, Date: "2023-01-05"},
		{Status: models.StatusApproved, Date: "2023-02-28"},
		{Status: models.StatusApproved, Date: "2023-12-31"},
		{Status: models.StatusApproved, Date: "garbage"},
	}

	stats := ComputeStatistics(bookings, now)

	require.Len(t, stats.ByMonth, 12)
	assert.Equal(t, models.MonthCount{Year: 2023, Month: 2, Label: "Feb 23", Count: 1}, stats.ByMonth[0])
	assert.Equal(t, models.MonthCount{Year: 2023, Month: 12, Label: "Dec 23", Count: 1}, stats.ByMonth[10])
	assert.Equal(t, models.MonthCount{Year: 2024, Month: 1, Label: "Jan 24", Count: 1}, stats.ByMonth[11])
	assert.Equal(t, 5, stats.Total)
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil, fixedNow)

	assert.Zero(t, stats.Total)
	assert.Len(t, stats.ByDay, 7)
	assert.Len(t, stats.ByMonth, 12)
	assert.Equal(t, "Jun 24", stats.ByMonth[11].Label)
	assert.Equal(t, "Jul 23", stats.ByMonth[0].Label)
}

func TestStatisticsServiceReadsRepository(t *testing.T) {
	env := newTestEnv(t)
	b := env.book(t, "area-1", "slot-area-1-1", "time-1", "2024-06-15")
	env.book(t, "area-1", "slot-area-1-2", "time-1", "2024-06-14")
	_, err := env.services.Bookings.UpdateStatus(context.Background(), b.ID, models.StatusApproved)
	require.NoError(t, err)

	stats := env.services.Statistics.Get()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.ByDay[6].Count)
	assert.Equal(t, 1, stats.ByDay[5].Count)
	assert.Equal(t, 2, stats.ByMonth[11].Count)
}
