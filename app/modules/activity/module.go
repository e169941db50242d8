package activity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/hablemos-club/league-bot/app/eventbus"
	"github.com/hablemos-club/league-bot/app/shared/observability"
	activitymetrics "github.com/hablemos-club/league-bot/app/shared/observability/metrics/activity"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils"
	"github.com/hablemos-club/league-bot/config"

	activityservice "github.com/hablemos-club/league-bot/app/modules/activity/application"
	activityhandlers "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/handlers"
	"github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/langdetect"
	activitydb "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/repositories"
	activityrouter "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/router"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// Module represents the activity module.
type Module struct {
	ActivityService activityservice.Service
	ActivityRouter  *activityrouter.ActivityRouter
	cancelFunc      context.CancelFunc
	observability   observability.Observability
	sweepInterval   time.Duration
	cooldown        *activityservice.CooldownLimiter
}

// NewActivityModule creates and initializes a new activity module.
func NewActivityModule(
	ctx context.Context,
	obs observability.Observability,
	cfg *config.Config,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	invalidator activityservice.CacheInvalidator,
	routerCtx context.Context,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "activity.NewActivityModule initializing")

	// 1. Initialize Repositories. Member and round lookups go straight to the
	// owning modules' repositories; the gate only needs their read side.
	repo := activitydb.NewRepository(db)
	var members activityservice.MemberSource = userdb.NewRepository(db)
	var rounds activityservice.RoundSource = rounddb.NewRepository(db)

	// 2. Resolve Metrics
	metrics := obs.Registry.ActivityMetrics
	if metrics == nil {
		metrics = activitymetrics.NewNoop()
	}

	// 3. Initialize collaborators
	detector := langdetect.NewClient(eventBus.Conn(), logger)
	cooldown := activityservice.NewCooldownLimiter(cfg.League.MessageCooldown)

	// 4. Initialize Service
	service := activityservice.NewActivityService(
		repo,
		members,
		rounds,
		detector,
		cooldown,
		invalidator,
		activityservice.GateConfig{
			GuildID:          sharedtypes.GuildID(cfg.Discord.GuildID),
			Cooldown:         cfg.League.MessageCooldown,
			DailyCap:         cfg.League.DailyCap,
			PointsPerMessage: cfg.League.PointsPerMessage,
		},
		logger,
		metrics,
		tracer,
		db,
	)

	// 5. Initialize Handlers
	handlers := activityhandlers.NewActivityHandlers(service, logger, tracer)

	// 6. Initialize Router
	activityRouter := activityrouter.NewActivityRouter(
		logger,
		router,
		eventBus,
		eventBus,
		helpers,
		tracer,
	)

	// 7. Configure the router with handlers
	if err := activityRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure activity router: %w", err)
	}

	return &Module{
		ActivityService: service,
		ActivityRouter:  activityRouter,
		observability:   obs,
		sweepInterval:   cfg.League.SweepInterval,
		cooldown:        cooldown,
	}, nil
}

// Run starts the activity module and its cooldown sweep loop.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting activity module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	interval := m.sweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cooldown.Sweep()
		case <-ctx.Done():
			logger.InfoContext(ctx, "Activity module goroutine stopped")
			return
		}
	}
}

// Close shuts down the activity module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping activity module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Activity module stopped")
	return nil
}
