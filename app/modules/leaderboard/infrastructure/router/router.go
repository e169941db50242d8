package leaderboardrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	"github.com/hablemos-club/league-bot/app/eventbus"
	leaderboardevents "github.com/hablemos-club/league-bot/app/shared/events/leaderboard"
	"github.com/hablemos-club/league-bot/app/shared/utils"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"

	leaderboardhandlers "github.com/hablemos-club/league-bot/app/modules/leaderboard/infrastructure/handlers"
)

// LeaderboardRouter handles Watermill handler registration for leaderboard events.
type LeaderboardRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	helper     utils.Helpers
	tracer     trace.Tracer
}

// NewLeaderboardRouter creates a new LeaderboardRouter.
func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	helper utils.Helpers,
	tracer trace.Tracer,
) *LeaderboardRouter {
	return &LeaderboardRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		helper:     helper,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *LeaderboardRouter) Configure(_ context.Context, handlers leaderboardhandlers.Handlers) error {
	r.registerHandlers(handlers)
	return nil
}

// handlerDeps bundles dependencies for handler registration.
type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
	helper     utils.Helpers
}

// registerHandlers wires NATS topics to handler methods.
func (r *LeaderboardRouter) registerHandlers(handlers leaderboardhandlers.Handlers) {
	deps := handlerDeps{
		router:     r.router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		helper:     r.helper,
	}

	r.logger.Info("Registering leaderboard module handlers")

	registerHandler(deps, leaderboardevents.LeaderboardRequestedV1, handlers.HandleLeaderboardRequest)
	registerHandler(deps, leaderboardevents.UserStatsRequestedV1, handlers.HandleUserStatsRequest)
	registerHandler(deps, leaderboardevents.LeagueTotalsRequestedV1, handlers.HandleLeagueTotalsRequest)

	r.logger.Info("Leaderboard module handlers registered successfully")
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "leaderboard." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.helper,
			nil,
			handler,
		),
	)
}

// Close shuts down the router.
func (r *LeaderboardRouter) Close() error {
	return r.router.Close()
}
