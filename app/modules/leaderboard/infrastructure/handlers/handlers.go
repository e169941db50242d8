package leaderboardhandlers

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	leaderboardevents "github.com/hablemos-club/league-bot/app/shared/events/leaderboard"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"

	leaderboardservice "github.com/hablemos-club/league-bot/app/modules/leaderboard/application"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// LeaderboardHandlers implements the Handlers interface.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers instance.
func NewLeaderboardHandlers(
	service leaderboardservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &LeaderboardHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// isLeaderboardDomainError reports whether err is a business rejection that
// should become a failure event rather than a redelivery.
func isLeaderboardDomainError(err error) bool {
	return errors.Is(err, leaderboardservice.ErrInvalidBoardType) ||
		errors.Is(err, leaderboardservice.ErrInvalidUserID) ||
		errors.Is(err, userdb.ErrNotFound) ||
		errors.Is(err, rounddb.ErrNoActiveRound)
}

// HandleLeaderboardRequest serves one board's current standings.
func (h *LeaderboardHandlers) HandleLeaderboardRequest(ctx context.Context, payload *leaderboardevents.LeaderboardRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeaderboardHandlers.HandleLeaderboardRequest")
	defer span.End()

	entries, err := h.service.GetLeaderboard(ctx, payload.BoardType, payload.Limit)
	if err != nil {
		if isLeaderboardDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: leaderboardevents.LeaderboardFailedV1,
				Payload: &leaderboardevents.LeaderboardFailedPayloadV1{
					BoardType: payload.BoardType,
					Reason:    err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: leaderboardevents.LeaderboardRetrievedV1,
		Payload: &leaderboardevents.LeaderboardRetrievedPayloadV1{
			BoardType: payload.BoardType,
			Limit:     payload.Limit,
			Entries:   entries,
		},
	}}, nil
}

// HandleUserStatsRequest serves one member's current-round stats.
func (h *LeaderboardHandlers) HandleUserStatsRequest(ctx context.Context, payload *leaderboardevents.UserStatsRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeaderboardHandlers.HandleUserStatsRequest")
	defer span.End()

	stats, err := h.service.GetUserStats(ctx, payload.UserID)
	if err != nil {
		if isLeaderboardDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: leaderboardevents.UserStatsFailedV1,
				Payload: &leaderboardevents.UserStatsFailedPayloadV1{
					UserID: payload.UserID,
					Reason: err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: leaderboardevents.UserStatsRetrievedV1,
		Payload: &leaderboardevents.UserStatsRetrievedPayloadV1{
			Stats: *stats,
		},
	}}, nil
}

// HandleLeagueTotalsRequest serves the admin overview.
func (h *LeaderboardHandlers) HandleLeagueTotalsRequest(ctx context.Context, payload *leaderboardevents.LeagueTotalsRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeaderboardHandlers.HandleLeagueTotalsRequest")
	defer span.End()

	h.logger.InfoContext(ctx, "League totals requested",
		slog.String("requested_by", string(payload.RequestedBy)),
	)

	totals, err := h.service.GetLeagueTotals(ctx)
	if err != nil {
		if isLeaderboardDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: leaderboardevents.LeagueTotalsFailedV1,
				Payload: &leaderboardevents.LeagueTotalsFailedPayloadV1{
					Reason: err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: leaderboardevents.LeagueTotalsRetrievedV1,
		Payload: &leaderboardevents.LeagueTotalsRetrievedPayloadV1{
			Totals: *totals,
		},
	}}, nil
}
