package activityrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	"github.com/hablemos-club/league-bot/app/eventbus"
	activityevents "github.com/hablemos-club/league-bot/app/shared/events/activity"
	"github.com/hablemos-club/league-bot/app/shared/utils"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"

	activityhandlers "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/handlers"
)

// ActivityRouter handles Watermill handler registration for activity events.
type ActivityRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	helper     utils.Helpers
	tracer     trace.Tracer
}

// NewActivityRouter creates a new ActivityRouter.
func NewActivityRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	helper utils.Helpers,
	tracer trace.Tracer,
) *ActivityRouter {
	return &ActivityRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		helper:     helper,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *ActivityRouter) Configure(_ context.Context, handlers activityhandlers.Handlers) error {
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
func (r *ActivityRouter) registerHandlers(handlers activityhandlers.Handlers) {
	deps := handlerDeps{
		router:     r.router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		helper:     r.helper,
	}

	r.logger.Info("Registering activity module handlers",
		slog.String("ingest_subject", activityevents.MessageReceivedV1),
	)

	registerHandler(deps, activityevents.MessageReceivedV1, handlers.HandleMessageReceived)
	registerHandler(deps, activityevents.ChannelExcludeRequestedV1, handlers.HandleChannelExcludeRequest)
	registerHandler(deps, activityevents.ChannelIncludeRequestedV1, handlers.HandleChannelIncludeRequest)
	registerHandler(deps, activityevents.ExcludedChannelsRequestedV1, handlers.HandleExcludedChannelsRequest)
	registerHandler(deps, activityevents.MessageValidateRequestedV1, handlers.HandleMessageValidateRequest)
	registerHandler(deps, activityevents.RecentActivityRequestedV1, handlers.HandleRecentActivityRequest)

	r.logger.Info("Activity module handlers registered successfully")
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "activity." + topic

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
func (r *ActivityRouter) Close() error {
	return r.router.Close()
}
