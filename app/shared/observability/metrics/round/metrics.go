package roundmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RoundMetrics records round-module operation and lifecycle metrics.
type RoundMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordRoundClosed(ctx context.Context, outcome string)
	RecordRoleCallFailure(ctx context.Context, action string)
}

type prometheusMetrics struct {
	attempts     *prometheus.CounterVec
	successes    *prometheus.CounterVec
	failures     *prometheus.CounterVec
	durations    *prometheus.HistogramVec
	closes       *prometheus.CounterVec
	roleFailures *prometheus.CounterVec
}

// NewPrometheus creates RoundMetrics backed by the given registry.
func NewPrometheus(reg prometheus.Registerer) RoundMetrics {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_round_operation_attempts_total",
			Help: "Round operations attempted.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_round_operation_successes_total",
			Help: "Round operations completed successfully.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_round_operation_failures_total",
			Help: "Round operations that failed.",
		}, []string{"operation", "service"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "league_round_operation_duration_seconds",
			Help:    "Round operation duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		closes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_round_close_attempts_total",
			Help: "Round close invocations by outcome.",
		}, []string{"outcome"}),
		roleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_round_role_call_failures_total",
			Help: "Best-effort champion role calls that failed.",
		}, []string{"action"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations, m.closes, m.roleFailures)
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

func (m *prometheusMetrics) RecordRoundClosed(ctx context.Context, outcome string) {
	m.closes.WithLabelValues(outcome).Inc()
}

func (m *prometheusMetrics) RecordRoleCallFailure(ctx context.Context, action string) {
	m.roleFailures.WithLabelValues(action).Inc()
}

type noopMetrics struct{}

// NewNoop returns RoundMetrics that records nothing.
func NewNoop() RoundMetrics {
	return noopMetrics{}
}

func (noopMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
}
func (noopMetrics) RecordRoundClosed(ctx context.Context, outcome string)    {}
func (noopMetrics) RecordRoleCallFailure(ctx context.Context, action string) {}
