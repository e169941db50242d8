package roundservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

// ErrNoSeedUsers is returned when a seed request carries no user IDs.
var ErrNoSeedUsers = errors.New("at least one user ID is required")

// ErrInvalidLeague is returned when a seed request names an unknown league.
var ErrInvalidLeague = errors.New("unknown league")

// SeedRoleRecipients records the given users as champion role holders of the
// most recently completed round, so the next close treats them as resting.
// Re-seeding the same users is a no-op.
func (s *RoundService) SeedRoleRecipients(ctx context.Context, req SeedRequest) (*SeedResult, error) {
	seedTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*SeedResult, error], error) {
		return s.seedRoleRecipientsLogic(ctx, db, req)
	}

	result, err := withTelemetry(s, ctx, "SeedRoleRecipients", string(req.League), func(ctx context.Context) (results.OperationResult[*SeedResult, error], error) {
		return runInTx(s, ctx, seedTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// seedRoleRecipientsLogic contains the core logic.
func (s *RoundService) seedRoleRecipientsLogic(ctx context.Context, db bun.IDB, req SeedRequest) (results.OperationResult[*SeedResult, error], error) {
	if req.League != sharedtypes.LeagueSpanish && req.League != sharedtypes.LeagueEnglish {
		return results.FailureResult[*SeedResult, error](ErrInvalidLeague), nil
	}

	userIDs := dedupeUserIDs(req.UserIDs)
	if len(userIDs) == 0 {
		return results.FailureResult[*SeedResult, error](ErrNoSeedUsers), nil
	}

	round, err := s.repo.GetLatestCompleted(ctx, db)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return results.FailureResult[*SeedResult, error](err), nil
		}
		return results.OperationResult[*SeedResult, error]{}, fmt.Errorf("failed to read latest completed round: %w", err)
	}

	recipients := make([]*rounddb.RoleRecipient, 0, len(userIDs))
	for _, id := range userIDs {
		recipients = append(recipients, &rounddb.RoleRecipient{
			RoundID:    round.ID,
			UserID:     id,
			LeagueType: req.League,
		})
	}
	if err := s.repo.InsertRecipients(ctx, db, recipients); err != nil {
		return results.OperationResult[*SeedResult, error]{}, fmt.Errorf("failed to insert recipients: %w", err)
	}

	seeded := &SeedResult{
		RoundNumber: round.RoundNumber,
		Seeded:      len(recipients),
	}
	return results.SuccessResult[*SeedResult, error](seeded), nil
}

// dedupeUserIDs drops empties and duplicates, preserving first-seen order.
func dedupeUserIDs(ids []sharedtypes.DiscordID) []sharedtypes.DiscordID {
	seen := make(map[sharedtypes.DiscordID]struct{}, len(ids))
	out := make([]sharedtypes.DiscordID, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
