package round

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/hablemos-club/league-bot/app/eventbus"
	"github.com/hablemos-club/league-bot/app/shared/observability"
	"github.com/hablemos-club/league-bot/app/shared/observability/attr"
	roundmetrics "github.com/hablemos-club/league-bot/app/shared/observability/metrics/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils"
	"github.com/hablemos-club/league-bot/config"

	leaderboarddb "github.com/hablemos-club/league-bot/app/modules/leaderboard/infrastructure/repositories"
	roundservice "github.com/hablemos-club/league-bot/app/modules/round/application"
	rounddiscord "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/discord"
	roundhandlers "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/handlers"
	roundqueue "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/queue"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
	roundrouter "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/router"
)

// Module represents the round module.
type Module struct {
	RoundService  roundservice.Service
	RoundRouter   *roundrouter.RoundRouter
	Queue         *roundqueue.Service
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewRoundModule creates and initializes a new round module.
func NewRoundModule(
	ctx context.Context,
	obs observability.Observability,
	cfg *config.Config,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	invalidator roundservice.CacheInvalidator,
	routerCtx context.Context,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "round.NewRoundModule initializing")

	// 1. Initialize Repositories. Standings come straight from the leaderboard
	// module's repository so a close reads them through its own transaction.
	repo := rounddb.NewRepository(db)
	var standings roundservice.StandingsSource = leaderboarddb.NewRepository(db)

	// 2. Resolve Metrics
	metrics := obs.Registry.RoundMetrics
	if metrics == nil {
		metrics = roundmetrics.NewNoop()
	}

	// 3. Initialize collaborators
	notifier := rounddiscord.NewNotifier(
		eventBus,
		helpers,
		logger,
		cfg.Discord.ChampionRoleID,
		sharedtypes.ChannelID(cfg.Discord.AnnounceChannelID),
	)

	// 4. Initialize Service
	service := roundservice.NewRoundService(
		repo,
		standings,
		notifier,
		invalidator,
		nil,
		roundservice.RoundConfig{
			ChampionCount:  cfg.League.ChampionCount,
			ActiveDayBonus: cfg.League.ActiveDayBonus,
		},
		logger,
		metrics,
		tracer,
		db,
	)

	// 5. Initialize the close queue. The worker runs the same CloseIfDue the
	// admin path does, so every trigger funnels into one idempotent check.
	queue, err := roundqueue.NewService(
		ctx,
		db,
		logger,
		cfg.Postgres.DSN,
		metrics,
		service,
		eventBus,
		helpers,
		cfg.League.CloseCheckInterval,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize round queue: %w", err)
	}

	// 6. Guarantee an ACTIVE round before consuming anything, and line up its
	// one-shot close. The sweep covers us if either step fails.
	info, err := service.EnsureActiveRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure active round: %w", err)
	}
	if err := queue.ScheduleRoundClose(ctx, info.ID, info.EndTime); err != nil {
		logger.WarnContext(ctx, "Failed to schedule close for active round",
			attr.Int64("round_id", int64(info.ID)),
			attr.Error(err),
		)
	}

	// 7. Initialize Handlers
	handlers := roundhandlers.NewRoundHandlers(service, queue, logger, tracer)

	// 8. Initialize Router
	roundRouter := roundrouter.NewRoundRouter(
		logger,
		router,
		eventBus,
		eventBus,
		helpers,
		tracer,
	)

	// 9. Configure the router with handlers
	if err := roundRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure round router: %w", err)
	}

	return &Module{
		RoundService:  service,
		RoundRouter:   roundRouter,
		Queue:         queue,
		observability: obs,
	}, nil
}

// Run starts the round module's queue workers.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting round module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.Queue.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to start round queue", attr.Error(err))
		return
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Round module goroutine stopped")
}

// Close shuts down the round module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping round module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if err := m.Queue.Stop(context.Background()); err != nil {
		logger.Error("Failed to stop round queue", attr.Error(err))
	}

	logger.Info("Round module stopped")
	return nil
}
