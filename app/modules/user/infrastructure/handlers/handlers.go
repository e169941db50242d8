package userhandlers

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	userevents "github.com/hablemos-club/league-bot/app/shared/events/user"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"

	userservice "github.com/hablemos-club/league-bot/app/modules/user/application"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// UserHandlers implements the Handlers interface.
type UserHandlers struct {
	service userservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewUserHandlers creates a new UserHandlers instance.
func NewUserHandlers(
	service userservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &UserHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// isMemberDomainError reports whether err is a business rejection that should
// become a failure event rather than a redelivery.
func isMemberDomainError(err error) bool {
	return errors.Is(err, userservice.ErrInvalidUserID) ||
		errors.Is(err, userservice.ErrNoLanguageSelected) ||
		errors.Is(err, userdb.ErrNotFound)
}

// HandleSignupRequest opts a user into the league.
func (h *UserHandlers) HandleSignupRequest(ctx context.Context, payload *userevents.SignupRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "UserHandlers.HandleSignupRequest")
	defer span.End()

	outcome, err := h.service.Join(ctx, userservice.JoinRequest{
		UserID:          payload.UserID,
		Username:        payload.Username,
		LearningSpanish: payload.LearningSpanish,
		LearningEnglish: payload.LearningEnglish,
	})
	if err != nil {
		if isMemberDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: userevents.SignupFailedV1,
				Payload: &userevents.SignupFailedPayloadV1{
					UserID: payload.UserID,
					Reason: err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: userevents.SignupSucceededV1,
		Payload: &userevents.SignupSucceededPayloadV1{
			Member:   *outcome.Member,
			Rejoined: outcome.Rejoined,
		},
	}}, nil
}

// HandleLeaveRequest opts a user out of the league.
func (h *UserHandlers) HandleLeaveRequest(ctx context.Context, payload *userevents.LeaveRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "UserHandlers.HandleLeaveRequest")
	defer span.End()

	_, err := h.service.Leave(ctx, payload.UserID)
	if err != nil {
		if isMemberDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: userevents.LeaveFailedV1,
				Payload: &userevents.LeaveFailedPayloadV1{
					UserID: payload.UserID,
					Reason: err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: userevents.LeaveSucceededV1,
		Payload: &userevents.LeaveSucceededPayloadV1{
			UserID: payload.UserID,
		},
	}}, nil
}

// HandleBanRequest bans a member from scoring.
func (h *UserHandlers) HandleBanRequest(ctx context.Context, payload *userevents.BanRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "UserHandlers.HandleBanRequest")
	defer span.End()

	h.logger.InfoContext(ctx, "Ban requested",
		slog.String("user_id", string(payload.UserID)),
		slog.String("requested_by", string(payload.RequestedBy)),
	)

	_, err := h.service.Ban(ctx, payload.UserID)
	if err != nil {
		if isMemberDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: userevents.BanFailedV1,
				Payload: &userevents.BanFailedPayloadV1{
					UserID: payload.UserID,
					Reason: err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: userevents.BanAppliedV1,
		Payload: &userevents.BanAppliedPayloadV1{
			UserID: payload.UserID,
		},
	}}, nil
}

// HandleUnbanRequest lifts a ban.
func (h *UserHandlers) HandleUnbanRequest(ctx context.Context, payload *userevents.UnbanRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "UserHandlers.HandleUnbanRequest")
	defer span.End()

	_, err := h.service.Unban(ctx, payload.UserID)
	if err != nil {
		if isMemberDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: userevents.UnbanFailedV1,
				Payload: &userevents.UnbanFailedPayloadV1{
					UserID: payload.UserID,
					Reason: err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: userevents.UnbanAppliedV1,
		Payload: &userevents.UnbanAppliedPayloadV1{
			UserID: payload.UserID,
		},
	}}, nil
}
