package user

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/hablemos-club/league-bot/app/eventbus"
	"github.com/hablemos-club/league-bot/app/shared/observability"
	usermetrics "github.com/hablemos-club/league-bot/app/shared/observability/metrics/user"
	"github.com/hablemos-club/league-bot/app/shared/utils"

	userservice "github.com/hablemos-club/league-bot/app/modules/user/application"
	userhandlers "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/handlers"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
	userrouter "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/router"
)

// Module represents the user module.
type Module struct {
	UserService   userservice.Service
	UserRouter    *userrouter.UserRouter
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewUserModule creates and initializes a new user module.
func NewUserModule(
	ctx context.Context,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	routerCtx context.Context,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "user.NewUserModule initializing")

	// 1. Initialize Repository
	repo := userdb.NewRepository(db)

	// 2. Resolve Metrics
	metrics := obs.Registry.UserMetrics
	if metrics == nil {
		metrics = usermetrics.NewNoop()
	}

	// 3. Initialize Service
	service := userservice.NewUserService(repo, logger, metrics, tracer, db)

	// 4. Initialize Handlers
	handlers := userhandlers.NewUserHandlers(service, logger, tracer)

	// 5. Initialize Router
	userRouter := userrouter.NewUserRouter(
		logger,
		router,
		eventBus,
		eventBus,
		helpers,
		tracer,
	)

	// 6. Configure the router with handlers
	if err := userRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure user router: %w", err)
	}

	return &Module{
		UserService:   service,
		UserRouter:    userRouter,
		observability: obs,
	}, nil
}

// Run starts the user module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting user module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "User module goroutine stopped")
}

// Close shuts down the user module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping user module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("User module stopped")
	return nil
}
