package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// action: add, remove
	CompletionChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_completion_changes_total",
			Help: "Completions added or removed through the API",
		},
		[]string{"action"},
	)

	// result: hit, miss, stale, error
	CompletionCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_completion_cache_lookups_total",
			Help: "Completion cache lookups by result",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequestDuration(method, path string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

func IncrementCompletionChange(action string) {
	CompletionChanges.WithLabelValues(action).Inc()
}

func IncrementCacheLookup(result string) {
	CompletionCacheLookups.WithLabelValues(result).Inc()
}
