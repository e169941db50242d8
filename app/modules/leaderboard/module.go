package leaderboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/hablemos-club/league-bot/app/eventbus"
	"github.com/hablemos-club/league-bot/app/shared/observability"
	leaderboardmetrics "github.com/hablemos-club/league-bot/app/shared/observability/metrics/leaderboard"
	"github.com/hablemos-club/league-bot/app/shared/utils"
	"github.com/hablemos-club/league-bot/config"

	leaderboardservice "github.com/hablemos-club/league-bot/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/hablemos-club/league-bot/app/modules/leaderboard/infrastructure/handlers"
	leaderboarddb "github.com/hablemos-club/league-bot/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/hablemos-club/league-bot/app/modules/leaderboard/infrastructure/router"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	cancelFunc         context.CancelFunc
	observability      observability.Observability
	cache              *leaderboardservice.BoardCache
}

// NewLeaderboardModule creates and initializes a new leaderboard module.
func NewLeaderboardModule(
	ctx context.Context,
	obs observability.Observability,
	cfg *config.Config,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	routerCtx context.Context,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule initializing")

	// 1. Initialize Repositories. Standings are projections over the user and
	// activity modules' tables; round scoping reads the round module's.
	repo := leaderboarddb.NewRepository(db)
	var members leaderboardservice.MemberSource = userdb.NewRepository(db)
	var rounds leaderboardservice.RoundSource = rounddb.NewRepository(db)

	// 2. Resolve Metrics
	metrics := obs.Registry.LeaderboardMetrics
	if metrics == nil {
		metrics = leaderboardmetrics.NewNoop()
	}

	// 3. Initialize the board cache. Writers elsewhere invalidate it through
	// the service's Cache accessor.
	cache := leaderboardservice.NewBoardCache(cfg.League.CacheTTL)

	// 4. Initialize Service
	service := leaderboardservice.NewLeaderboardService(
		repo,
		members,
		rounds,
		cache,
		leaderboardservice.BoardConfig{
			ActiveDayBonus: cfg.League.ActiveDayBonus,
			DefaultLimit:   cfg.League.DisplayCount,
		},
		logger,
		metrics,
		tracer,
		db,
	)

	// 5. Initialize Handlers
	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, logger, tracer)

	// 6. Initialize Router
	leaderboardRouter := leaderboardrouter.NewLeaderboardRouter(
		logger,
		router,
		eventBus,
		eventBus,
		helpers,
		tracer,
	)

	// 7. Configure the router with handlers
	if err := leaderboardRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	return &Module{
		LeaderboardService: service,
		LeaderboardRouter:  leaderboardRouter,
		observability:      obs,
		cache:              cache,
	}, nil
}

// Cache exposes the board cache for cross-module invalidation wiring.
func (m *Module) Cache() *leaderboardservice.BoardCache {
	return m.cache
}

// Run starts the leaderboard module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close shuts down the leaderboard module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Leaderboard module stopped")
	return nil
}
