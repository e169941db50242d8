package leaderboardmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LeaderboardMetrics records leaderboard-module operation and cache metrics.
type LeaderboardMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordCacheLookup(ctx context.Context, hit bool)
}

type prometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	lookups   *prometheus.CounterVec
}

// NewPrometheus creates LeaderboardMetrics backed by the given registry.
func NewPrometheus(reg prometheus.Registerer) LeaderboardMetrics {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_leaderboard_operation_attempts_total",
			Help: "Leaderboard operations attempted.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_leaderboard_operation_successes_total",
			Help: "Leaderboard operations completed successfully.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_leaderboard_operation_failures_total",
			Help: "Leaderboard operations that failed.",
		}, []string{"operation", "service"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "league_leaderboard_operation_duration_seconds",
			Help:    "Leaderboard operation duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_leaderboard_cache_lookups_total",
			Help: "Leaderboard cache lookups by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations, m.lookups)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
	m.durations.WithLabelValues(operation, service).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.WithLabelValues(result).Inc()
}

type noopMetrics struct{}

// NewNoop returns LeaderboardMetrics that records nothing.
func NewNoop() LeaderboardMetrics {
	return noopMetrics{}
}

func (noopMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
}
func (noopMetrics) RecordCacheLookup(ctx context.Context, hit bool) {}
