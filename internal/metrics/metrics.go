// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"parkify/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several servers can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	bookingsCreated   prometheus.Counter
	bookingConflicts  prometheus.Counter
	statusTransitions *prometheus.CounterVec
	bookingsByStatus  *prometheus.GaugeVec
	bookingsToday     prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parkify",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "parkify",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parkify",
			Name:      "bookings_created_total",
			Help:      "Bookings created.",
		}),
		bookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parkify",
			Name:      "booking_conflicts_total",
			Help:      "Create or edit attempts rejected because the slot was held.",
		}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parkify",
			Name:      "booking_status_changes_total",
			Help:      "Booking status changes by target status.",
		}, []string{"status"}),
		bookingsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "parkify",
			Name:      "bookings",
			Help:      "Current number of bookings by status.",
		}, []string{"status"}),
		bookingsToday: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parkify",
			Name:      "bookings_today",
			Help:      "Bookings whose date is today.",
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.bookingsCreated,
		m.bookingConflicts,
		m.statusTransitions,
		m.bookingsByStatus,
		m.bookingsToday,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) BookingCreated() {
	m.bookingsCreated.Inc()
}

func (m *Metrics) BookingConflict() {
	m.bookingConflicts.Inc()
}

func (m *Metrics) StatusChanged(status models.BookingStatus) {
	m.statusTransitions.WithLabelValues(string(status)).Inc()
}

// SetStatistics publishes an aggregate snapshot as gauges.
func (m *Metrics) SetStatistics(stats models.Statistics) {
	m.bookingsByStatus.WithLabelValues(string(models.StatusPending)).Set(float64(stats.Pending))
	m.bookingsByStatus.WithLabelValues(string(models.StatusApproved)).Set(float64(stats.Approved))
	m.bookingsByStatus.WithLabelValues(string(models.StatusRejected)).Set(float64(stats.Rejected))
	if n := len(stats.ByDay); n > 0 {
		m.bookingsToday.Set(float64(stats.ByDay[n-1].Count))
	}
}
