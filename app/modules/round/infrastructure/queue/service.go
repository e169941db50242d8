// Package roundqueue drives the round lifecycle on River. A periodic sweep
// job plus a one-shot job at each round's exact end time both funnel into the
// same close check; the check is idempotent, so overlap is harmless and the
// sweep heals any one-shot the process missed while down.
package roundqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	"github.com/hablemos-club/league-bot/app/eventbus"
	"github.com/hablemos-club/league-bot/app/shared/observability/attr"
	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils"
)

// Metrics is the slice of the round metrics the queue layer records.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// RoundCloser runs the close check. The round module's service satisfies it.
type RoundCloser interface {
	CloseIfDue(ctx context.Context, force bool) (*roundtypes.CloseResult, error)
}

// QueueService defines the contract for round close scheduling.
type QueueService interface {
	// ScheduleRoundClose inserts a one-shot close check at the round's end
	// time. Re-scheduling the same round is a no-op.
	ScheduleRoundClose(ctx context.Context, roundID sharedtypes.RoundID, endTime time.Time) error
	// CancelRoundClose cancels the pending one-shot for a round, for
	// reschedules that moved the end time.
	CancelRoundClose(ctx context.Context, roundID sharedtypes.RoundID) error
	// HealthCheck verifies the queue service is healthy.
	HealthCheck(ctx context.Context) error
	// Start starts the queue service.
	Start(ctx context.Context) error
	// Stop stops the queue service.
	Stop(ctx context.Context) error
}

// Ensure Service implements QueueService
var _ QueueService = (*Service)(nil)

// Service schedules and runs round close checks using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics Metrics
}

// NewService creates a River-based queue service for the round lifecycle.
// River requires pgx, so the service owns a pgx pool alongside the bun DB it
// queries for job bookkeeping.
func NewService(
	ctx context.Context,
	bunDB *bun.DB,
	logger *slog.Logger,
	dsn string,
	metrics Metrics,
	closer RoundCloser,
	eventBus eventbus.EventBus,
	helpers utils.Helpers,
	sweepInterval time.Duration,
) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	ctxLogger.Info("Initializing round queue service")

	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		ctxLogger.Error("Failed to parse DSN for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		ctxLogger.Error("Failed to create pgx pool for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	service := &Service{
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: metrics,
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewCloseWorker(ctxLogger, closer, service, eventBus, helpers))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			"round":            {MaxWorkers: 5},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(sweepInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return RoundCloseJob{Trigger: TriggerSweep}, &river.InsertOpts{Queue: "round"}
				},
				// RunOnStart covers a Sunday noon the process slept through.
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}
	service.client = riverClient

	duration := time.Since(start)
	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", duration)

	ctxLogger.Info("Round queue service initialized successfully",
		attr.Duration("sweep_interval", sweepInterval))
	return service, nil
}

// Start starts the River queue service.
func (s *Service) Start(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")

	s.logger.Info("Starting round queue service")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	duration := time.Since(start)
	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.metrics.RecordOperationDuration(ctx, "start_service", "river", duration)

	s.logger.Info("Round queue service started successfully")
	return nil
}

// Stop stops the River queue service and releases its pool.
func (s *Service) Stop(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")

	s.logger.Info("Stopping round queue service")

	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()

	duration := time.Since(start)
	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.metrics.RecordOperationDuration(ctx, "stop_service", "river", duration)

	s.logger.Info("Round queue service stopped successfully")
	return nil
}

// ScheduleRoundClose inserts a one-shot close check at the round's end time.
func (s *Service) ScheduleRoundClose(ctx context.Context, roundID sharedtypes.RoundID, endTime time.Time) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_round_close", "river")

	ctxLogger := s.logger.With(
		attr.Int64("round_id", int64(roundID)),
		attr.Time("end_time", endTime),
	)

	job := RoundCloseJob{
		RoundID: roundID,
		Trigger: TriggerSchedule,
	}

	result, err := s.client.Insert(ctx, job, &river.InsertOpts{
		Queue:       "round",
		ScheduledAt: endTime,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		ctxLogger.Error("Failed to schedule round close job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "schedule_round_close", "river")
		return fmt.Errorf("failed to schedule round close job: %w", err)
	}

	duration := time.Since(start)
	s.metrics.RecordOperationSuccess(ctx, "schedule_round_close", "river")
	s.metrics.RecordOperationDuration(ctx, "schedule_round_close", "river", duration)

	if result.UniqueSkippedAsDuplicate {
		ctxLogger.Debug("Round close job already scheduled")
	} else {
		ctxLogger.Info("Round close job scheduled", attr.Int64("job_id", result.Job.ID))
	}
	return nil
}

// CancelRoundClose cancels the pending one-shot close for a round.
func (s *Service) CancelRoundClose(ctx context.Context, roundID sharedtypes.RoundID) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "cancel_round_close", "river")

	ctxLogger := s.logger.With(
		attr.Int64("round_id", int64(roundID)),
	)

	type riverJobRow struct {
		ID int64 `bun:"id"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id").
		Where("kind = ?", RoundCloseJob{}.Kind()).
		Where("state IN (?, ?, ?)", "available", "scheduled", "retryable").
		Where("(args->>'round_id')::bigint = ?", int64(roundID)).
		Where("args->>'trigger' = ?", TriggerSchedule).
		Scan(ctx, &jobs)
	if err != nil {
		ctxLogger.Error("Failed to query close jobs for cancellation", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "cancel_round_close", "river")
		return fmt.Errorf("failed to query close jobs: %w", err)
	}

	cancelled := 0
	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			ctxLogger.Warn("Failed to cancel close job",
				attr.Int64("job_id", job.ID),
				attr.Error(err))
			continue
		}
		cancelled++
	}

	duration := time.Since(start)
	s.metrics.RecordOperationSuccess(ctx, "cancel_round_close", "river")
	s.metrics.RecordOperationDuration(ctx, "cancel_round_close", "river", duration)

	ctxLogger.Info("Close job cancellation completed",
		attr.Int("total_found", len(jobs)),
		attr.Int("cancelled_count", cancelled))
	return nil
}

// HealthCheck verifies the queue service is healthy.
func (s *Service) HealthCheck(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "health_check", "river")

	if s.client == nil {
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("queue service health check failed: %w", err)
	}

	duration := time.Since(start)
	s.metrics.RecordOperationSuccess(ctx, "health_check", "river")
	s.metrics.RecordOperationDuration(ctx, "health_check", "river", duration)

	s.logger.Debug("Queue service health check passed", attr.Int("total_jobs", count))
	return nil
}
