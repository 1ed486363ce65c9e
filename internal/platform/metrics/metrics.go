// Package metrics registers the application's Prometheus collectors.
// Collectors are package-level promauto values so every component
// records into the default registry exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TasksCreated counts task creations, labeled by how the task came
	// to exist: "user" for explicit creation, "recurrence" for spawned
	// successor occurrences.
	TasksCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasknest_tasks_created_total",
			Help: "Total number of tasks created",
		},
		[]string{"source"},
	)

	// TasksCompleted counts false->true done transitions.
	TasksCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasknest_tasks_completed_total",
			Help: "Total number of tasks marked done",
		},
	)

	// RecurrenceSpawnFailures counts successor inserts that failed after
	// a recurring task was completed. These do not fail the completing
	// request, so the counter is the main operational signal for them.
	RecurrenceSpawnFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasknest_recurrence_spawn_failures_total",
			Help: "Total number of failed successor-task inserts",
		},
	)

	// RequestDuration observes HTTP request latency by method and status class.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tasknest_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)
