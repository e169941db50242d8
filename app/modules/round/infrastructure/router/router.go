package roundrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	"github.com/hablemos-club/league-bot/app/eventbus"
	roundevents "github.com/hablemos-club/league-bot/app/shared/events/round"
	"github.com/hablemos-club/league-bot/app/shared/utils"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"

	roundhandlers "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/handlers"
)

// RoundRouter handles Watermill handler registration for round events.
type RoundRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	helper     utils.Helpers
	tracer     trace.Tracer
}

// NewRoundRouter creates a new RoundRouter.
func NewRoundRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	helper utils.Helpers,
	tracer trace.Tracer,
) *RoundRouter {
	return &RoundRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		helper:     helper,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *RoundRouter) Configure(_ context.Context, handlers roundhandlers.Handlers) error {
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
func (r *RoundRouter) registerHandlers(handlers roundhandlers.Handlers) {
	deps := handlerDeps{
		router:     r.router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		helper:     r.helper,
	}

	r.logger.Info("Registering round module handlers")

	registerHandler(deps, roundevents.RoundEndRequestedV1, handlers.HandleRoundEndRequested)
	registerHandler(deps, roundevents.RoundPreviewRequestedV1, handlers.HandleRoundPreviewRequested)
	registerHandler(deps, roundevents.RoundRescheduleRequestedV1, handlers.HandleRoundRescheduleRequested)
	registerHandler(deps, roundevents.RecipientsSeedRequestedV1, handlers.HandleRecipientsSeedRequested)
	registerHandler(deps, roundevents.RoundReportRequestedV1, handlers.HandleRoundReportRequested)

	r.logger.Info("Round module handlers registered successfully")
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "round." + topic

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
func (r *RoundRouter) Close() error {
	return r.router.Close()
}
