package usermetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UserMetrics records user-module operation metrics.
type UserMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordMembershipChange(ctx context.Context, change string)
}

type prometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	changes   *prometheus.CounterVec
}

// NewPrometheus creates UserMetrics backed by the given registry.
func NewPrometheus(reg prometheus.Registerer) UserMetrics {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_user_operation_attempts_total",
			Help: "User operations attempted.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_user_operation_successes_total",
			Help: "User operations completed successfully.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_user_operation_failures_total",
			Help: "User operations that failed.",
		}, []string{"operation", "service"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "league_user_operation_duration_seconds",
			Help:    "User operation duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_user_membership_changes_total",
			Help: "Membership state changes by kind (join, leave, ban, unban).",
		}, []string{"change"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations, m.changes)
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

func (m *prometheusMetrics) RecordMembershipChange(ctx context.Context, change string) {
	m.changes.WithLabelValues(change).Inc()
}

type noopMetrics struct{}

// NewNoop returns UserMetrics that records nothing.
func NewNoop() UserMetrics {
	return noopMetrics{}
}

func (noopMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
}
func (noopMetrics) RecordMembershipChange(ctx context.Context, change string) {}
