package activitymetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ActivityMetrics records activity-module operation and gate metrics.
type ActivityMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordGateDecision(ctx context.Context, accepted bool, reason string)
}

type prometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	decisions *prometheus.CounterVec
}

// NewPrometheus creates ActivityMetrics backed by the given registry.
func NewPrometheus(reg prometheus.Registerer) ActivityMetrics {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_activity_operation_attempts_total",
			Help: "Activity operations attempted.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_activity_operation_successes_total",
			Help: "Activity operations completed successfully.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_activity_operation_failures_total",
			Help: "Activity operations that failed.",
		}, []string{"operation", "service"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "league_activity_operation_duration_seconds",
			Help:    "Activity operation duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_activity_gate_decisions_total",
			Help: "Gate decisions by outcome and rejection reason.",
		}, []string{"outcome", "reason"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations, m.decisions)
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

func (m *prometheusMetrics) RecordGateDecision(ctx context.Context, accepted bool, reason string) {
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	m.decisions.WithLabelValues(outcome, reason).Inc()
}

type noopMetrics struct{}

// NewNoop returns ActivityMetrics that records nothing.
func NewNoop() ActivityMetrics {
	return noopMetrics{}
}

func (noopMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {}
func (noopMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
}
func (noopMetrics) RecordGateDecision(ctx context.Context, accepted bool, reason string) {}
