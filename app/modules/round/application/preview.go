package roundservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

// PreviewClose computes what a close would produce right now: standings,
// cooldown set, champion picks, and the announcement text. Read-only; runs
// whether or not the round is due.
func (s *RoundService) PreviewClose(ctx context.Context) (*roundtypes.ClosePreview, error) {
	previewTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*roundtypes.ClosePreview, error], error) {
		return s.previewCloseLogic(ctx, db)
	}

	result, err := withTelemetry(s, ctx, "PreviewClose", "preview", func(ctx context.Context) (results.OperationResult[*roundtypes.ClosePreview, error], error) {
		return runInTx(s, ctx, previewTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// previewCloseLogic contains the core logic.
func (s *RoundService) previewCloseLogic(ctx context.Context, db bun.IDB) (results.OperationResult[*roundtypes.ClosePreview, error], error) {
	round, err := s.repo.GetActiveRound(ctx, db)
	if err != nil {
		if errors.Is(err, rounddb.ErrNoActiveRound) {
			return results.FailureResult[*roundtypes.ClosePreview, error](err), nil
		}
		return results.OperationResult[*roundtypes.ClosePreview, error]{}, fmt.Errorf("failed to read active round: %w", err)
	}

	standings, err := s.loadStandings(ctx, db, round.ID)
	if err != nil {
		return results.OperationResult[*roundtypes.ClosePreview, error]{}, err
	}

	// The round being previewed is still ACTIVE, so the cooldown source is
	// simply the latest completed round.
	cooldownSet, cooldownIDs, err := s.loadCooldownSet(ctx, db, round.RoundNumber)
	if err != nil {
		return results.OperationResult[*roundtypes.ClosePreview, error]{}, err
	}

	champions := make(roundtypes.LeagueStandings, len(leagues))
	for _, league := range leagues {
		champions[league] = EligibleChampions(standings[league], cooldownSet, s.config.ChampionCount)
	}

	preview := &roundtypes.ClosePreview{
		Round:        round.ToInfo(),
		CooldownSet:  cooldownIDs,
		Standings:    standings,
		Champions:    champions,
		Announcement: BuildAnnouncement(round.ToInfo(), nil, standings, champions, cooldownSet),
	}
	if preview.CooldownSet == nil {
		preview.CooldownSet = []sharedtypes.DiscordID{}
	}
	return results.SuccessResult[*roundtypes.ClosePreview, error](preview), nil
}
