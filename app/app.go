package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/hablemos-club/league-bot/app/eventbus"
	"github.com/hablemos-club/league-bot/app/modules/activity"
	"github.com/hablemos-club/league-bot/app/modules/auth"
	"github.com/hablemos-club/league-bot/app/modules/leaderboard"
	"github.com/hablemos-club/league-bot/app/modules/round"
	"github.com/hablemos-club/league-bot/app/modules/user"
	"github.com/hablemos-club/league-bot/app/shared/observability"
	"github.com/hablemos-club/league-bot/app/shared/observability/attr"
	"github.com/hablemos-club/league-bot/app/shared/utils"
	"github.com/hablemos-club/league-bot/config"
)

// App assembles the backend: one bun.DB, one JetStream event bus, one shared
// watermill router every module registers its handlers on, and the HTTP API.
type App struct {
	Config          *config.Config
	Observability   observability.Observability
	DB              *bun.DB
	EventBus        eventbus.EventBus
	WatermillRouter *message.Router

	LeaderboardModule *leaderboard.Module
	ActivityModule    *activity.Module
	UserModule        *user.Module
	RoundModule       *round.Module
	AuthModule        *auth.Module

	httpServer   *http.Server
	helpers      utils.Helpers
	routerCtx    context.Context
	routerCancel context.CancelFunc
}

// Initialize wires every module against the shared infrastructure. Module
// order matters: the leaderboard cache is created first because activity
// writes and round closes invalidate it.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs observability.Observability) error {
	app.Config = cfg
	app.Observability = obs
	logger := obs.Provider.Logger

	app.helpers = utils.NewHelpers(logger)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	app.DB = db

	eventBus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = eventBus

	if err := eventbus.InitializeStreams(ctx, eventBus); err != nil {
		return fmt.Errorf("failed to initialize streams: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return fmt.Errorf("failed to create watermill router: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		utils.NewMiddlewareHelper().CommonMetadataMiddleware("backend"),
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)
	app.WatermillRouter = router
	app.routerCtx, app.routerCancel = context.WithCancel(ctx)

	leaderboardModule, err := leaderboard.NewLeaderboardModule(ctx, obs, cfg, eventBus, router, app.helpers, app.routerCtx, db)
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}
	app.LeaderboardModule = leaderboardModule

	activityModule, err := activity.NewActivityModule(ctx, obs, cfg, eventBus, router, app.helpers, leaderboardModule.Cache(), app.routerCtx, db)
	if err != nil {
		return fmt.Errorf("failed to initialize activity module: %w", err)
	}
	app.ActivityModule = activityModule

	userModule, err := user.NewUserModule(ctx, obs, eventBus, router, app.helpers, app.routerCtx, db)
	if err != nil {
		return fmt.Errorf("failed to initialize user module: %w", err)
	}
	app.UserModule = userModule

	roundModule, err := round.NewRoundModule(ctx, obs, cfg, eventBus, router, app.helpers, leaderboardModule.Cache(), app.routerCtx, db)
	if err != nil {
		return fmt.Errorf("failed to initialize round module: %w", err)
	}
	app.RoundModule = roundModule

	httpRouter := chi.NewRouter()
	authModule, err := auth.NewAuthModule(ctx, obs, cfg, httpRouter, leaderboardModule.LeaderboardService, roundModule.RoundService)
	if err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}
	app.AuthModule = authModule

	httpRouter.Get("/healthz", app.handleHealthz)
	httpRouter.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(obs.Registry.Prometheus, promhttp.HandlerOpts{}))
	app.httpServer = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           httpRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.InfoContext(ctx, "Application initialized",
		attr.String("http_address", cfg.HTTP.Address),
		attr.String("environment", cfg.Observability.Environment),
	)
	return nil
}

// Run starts the watermill router, the module goroutines, and the HTTP
// listener, then blocks until ctx is cancelled and everything is drained.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Provider.Logger

	routerDone := make(chan error, 1)
	go func() {
		routerDone <- app.WatermillRouter.Run(app.routerCtx)
	}()

	// Handlers are registered before Run; wait until the router is actually
	// consuming so modules never publish into a half-started pipeline.
	select {
	case <-app.WatermillRouter.Running():
	case err := <-routerDone:
		return fmt.Errorf("watermill router stopped before startup completed: %w", err)
	case <-ctx.Done():
		return ctx.Err()
	}

	var wg sync.WaitGroup
	for _, m := range []interface {
		Run(context.Context, *sync.WaitGroup)
	}{
		app.LeaderboardModule,
		app.ActivityModule,
		app.UserModule,
		app.RoundModule,
		app.AuthModule,
	} {
		wg.Add(1)
		go m.Run(ctx, &wg)
	}

	httpDone := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", attr.String("address", app.httpServer.Addr))
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			httpDone <- err
			return
		}
		httpDone <- nil
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-httpDone:
		if err != nil {
			logger.Error("HTTP server failed", attr.Error(err))
		}
	case err := <-routerDone:
		if err != nil {
			logger.Error("Watermill router failed", attr.Error(err))
		}
		routerDone = nil
	}

	app.shutdown()
	wg.Wait()

	if routerDone != nil {
		select {
		case err := <-routerDone:
			if err != nil && err != context.Canceled {
				logger.Error("Watermill router stopped with error", attr.Error(err))
			}
		case <-time.After(10 * time.Second):
			logger.Warn("Timed out waiting for watermill router to stop")
		}
	}

	logger.Info("Application shut down gracefully")
	return nil
}

// shutdown releases resources in reverse dependency order.
func (app *App) shutdown() {
	logger := app.Observability.Provider.Logger

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
	}

	for _, closer := range []interface{ Close() error }{
		app.AuthModule,
		app.RoundModule,
		app.UserModule,
		app.ActivityModule,
		app.LeaderboardModule,
	} {
		if err := closer.Close(); err != nil {
			logger.Error("Module close failed", attr.Error(err))
		}
	}

	app.routerCancel()
	if err := app.WatermillRouter.Close(); err != nil {
		logger.Error("Watermill router close failed", attr.Error(err))
	}
	if err := app.EventBus.Close(); err != nil {
		logger.Error("Event bus close failed", attr.Error(err))
	}
	if err := app.DB.Close(); err != nil {
		logger.Error("Database close failed", attr.Error(err))
	}
}

// handleHealthz reports liveness of the three external dependencies: the
// database, the NATS connection, and the round close queue.
func (app *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := app.DB.PingContext(ctx); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	if conn := app.EventBus.Conn(); conn == nil || !conn.IsConnected() {
		http.Error(w, "nats unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := app.RoundModule.Queue.HealthCheck(ctx); err != nil {
		http.Error(w, "queue unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
