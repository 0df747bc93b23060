package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend request latency in seconds, by endpoint and status.
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Habit backend request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"endpoint", "status"},
	)

	// Dashboard refresh outcomes.
	DashboardRefreshCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_refresh_count",
			Help: "Total number of dashboard refresh attempts",
		},
		[]string{"status"}, // status: success, failed, coalesced
	)

	// Reminder notifications fired by the polling loop.
	RemindersFiredCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_fired_count",
			Help: "Total number of reminder notifications fired",
		},
	)

	// Habit tracking dispatches.
	HabitTrackCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_track_count",
			Help: "Total number of habit tracking dispatches",
		},
		[]string{"habit_type", "status"},
	)
)

// RecordBackendRequest records one backend round-trip.
func RecordBackendRequest(endpoint, status string, duration time.Duration) {
	BackendRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())
}

// IncrementRefresh counts one refresh attempt outcome.
func IncrementRefresh(status string) {
	DashboardRefreshCount.WithLabelValues(status).Inc()
}

// IncrementTrack counts one tracking dispatch outcome.
func IncrementTrack(habitType, status string) {
	HabitTrackCount.WithLabelValues(habitType, status).Inc()
}
