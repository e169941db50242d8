package observability

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	activitymetrics "github.com/hablemos-club/league-bot/app/shared/observability/metrics/activity"
	leaderboardmetrics "github.com/hablemos-club/league-bot/app/shared/observability/metrics/leaderboard"
	roundmetrics "github.com/hablemos-club/league-bot/app/shared/observability/metrics/round"
	usermetrics "github.com/hablemos-club/league-bot/app/shared/observability/metrics/user"
)

// Config selects the observability identity for this process.
type Config struct {
	ServiceName string
	Environment string
	Version     string
}

// Provider holds process-wide providers.
type Provider struct {
	Logger *slog.Logger
}

// Registry holds the tracer, the Prometheus registry, and per-module metrics.
type Registry struct {
	Tracer             trace.Tracer
	Prometheus         *prometheus.Registry
	UserMetrics        usermetrics.UserMetrics
	ActivityMetrics    activitymetrics.ActivityMetrics
	LeaderboardMetrics leaderboardmetrics.LeaderboardMetrics
	RoundMetrics       roundmetrics.RoundMetrics
}

// Observability bundles everything modules need for logging, tracing, and metrics.
type Observability struct {
	Provider *Provider
	Registry *Registry
}

// Init builds the observability bundle: a JSON slog logger, the process tracer
// from the global otel provider, and a Prometheus registry with all module
// metrics registered.
func Init(cfg Config) Observability {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
	slog.SetDefault(logger)

	tracer := otel.Tracer(cfg.ServiceName)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Provider: &Provider{Logger: logger},
		Registry: &Registry{
			Tracer:             tracer,
			Prometheus:         promRegistry,
			UserMetrics:        usermetrics.NewPrometheus(promRegistry),
			ActivityMetrics:    activitymetrics.NewPrometheus(promRegistry),
			LeaderboardMetrics: leaderboardmetrics.NewPrometheus(promRegistry),
			RoundMetrics:       roundmetrics.NewPrometheus(promRegistry),
		},
	}
}

// NewTestObservability returns a bundle with noop metrics and a discard-free
// default logger, for use in tests and tooling.
func NewTestObservability() Observability {
	return Observability{
		Provider: &Provider{Logger: slog.Default()},
		Registry: &Registry{
			Tracer:             otel.Tracer("test"),
			Prometheus:         prometheus.NewRegistry(),
			UserMetrics:        usermetrics.NewNoop(),
			ActivityMetrics:    activitymetrics.NewNoop(),
			LeaderboardMetrics: leaderboardmetrics.NewNoop(),
			RoundMetrics:       roundmetrics.NewNoop(),
		},
	}
}
