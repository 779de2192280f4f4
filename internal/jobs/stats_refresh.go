package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"parkify/internal/models"

	"github.com/go-co-op/gocron/v2"
)

// StatsSource computes the current booking statistics.
type StatsSource interface {
	Get() models.Statistics
}

// StatsSink receives refreshed statistics, e.g. the Prometheus gauges.
type StatsSink interface {
	SetStatistics(stats models.Statistics)
}

// StatsRefreshJob periodically pushes booking statistics to the sink so that
// gauges stay current without anyone opening the admin dashboard.
type StatsRefreshJob struct {
	source    StatsSource
	sink      StatsSink
	interval  time.Duration
	location  *time.Location
	scheduler gocron.Scheduler
}

// NewStatsRefreshJob creates a new statistics refresh job
func NewStatsRefreshJob(source StatsSource, sink StatsSink, interval time.Duration, loc *time.Location) *StatsRefreshJob {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsRefreshJob{
		source:   source,
		sink:     sink,
		interval: interval,
		location: loc,
	}
}

// Start schedules the refresh and runs it once immediately
func (j *StatsRefreshJob) Start() error {
	if j.interval <= 0 {
		return fmt.Errorf("stats refresh interval must be positive, got %s", j.interval)
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(j.location))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(j.Refresh),
		gocron.WithName("stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("failed to schedule stats refresh: %w", err)
	}

	j.scheduler = s
	s.Start()

	slog.Info("Starting stats refresh job", "interval", j.interval.String())
	return nil
}

// Stop gracefully stops the background job
func (j *StatsRefreshJob) Stop() error {
	if j.scheduler == nil {
		return nil
	}
	if err := j.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	slog.Info("Stats refresh job stopped")
	return nil
}

// Refresh recomputes statistics and hands them to the sink
func (j *StatsRefreshJob) Refresh() {
	stats := j.source.Get()
	j.sink.SetStatistics(stats)

	slog.Debug("Statistics refreshed",
		"total", stats.Total,
		"pending", stats.Pending,
		"approved", stats.Approved,
		"rejected", stats.Rejected)
}
