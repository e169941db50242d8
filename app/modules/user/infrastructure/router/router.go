package userrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	"github.com/hablemos-club/league-bot/app/eventbus"
	userevents "github.com/hablemos-club/league-bot/app/shared/events/user"
	"github.com/hablemos-club/league-bot/app/shared/utils"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"

	userhandlers "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/handlers"
)

// UserRouter handles Watermill handler registration for user events.
type UserRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	helper     utils.Helpers
	tracer     trace.Tracer
}

// NewUserRouter creates a new UserRouter.
func NewUserRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	helper utils.Helpers,
	tracer trace.Tracer,
) *UserRouter {
	return &UserRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		helper:     helper,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *UserRouter) Configure(_ context.Context, handlers userhandlers.Handlers) error {
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
func (r *UserRouter) registerHandlers(handlers userhandlers.Handlers) {
	deps := handlerDeps{
		router:     r.router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		helper:     r.helper,
	}

	r.logger.Info("Registering user module handlers",
		slog.String("signup_subject", userevents.SignupRequestedV1),
		slog.String("leave_subject", userevents.LeaveRequestedV1),
	)

	registerHandler(deps, userevents.SignupRequestedV1, handlers.HandleSignupRequest)
	registerHandler(deps, userevents.LeaveRequestedV1, handlers.HandleLeaveRequest)
	registerHandler(deps, userevents.BanRequestedV1, handlers.HandleBanRequest)
	registerHandler(deps, userevents.UnbanRequestedV1, handlers.HandleUnbanRequest)

	r.logger.Info("User module handlers registered successfully")
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "user." + topic

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
func (r *UserRouter) Close() error {
	return r.router.Close()
}
