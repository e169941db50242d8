package roundservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/hablemos-club/league-bot/app/shared/observability/attr"
	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	roundutil "github.com/hablemos-club/league-bot/app/modules/round/utils"

	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

// closeStandingsLimit is how many rows per board the close reads. Ten leaves
// room to skip two boards' worth of resting champions and still seat three.
const closeStandingsLimit = 10

// CloseIfDue runs the round transition. The database work happens in one
// transaction guarded by the ACTIVE->COMPLETED conditional update; external
// effects (role changes, cache invalidation, the announcement) run only after
// that transaction commits.
func (s *RoundService) CloseIfDue(ctx context.Context, force bool) (*roundtypes.CloseResult, error) {
	closeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*roundtypes.CloseResult, error], error) {
		return s.closeIfDueLogic(ctx, db, force)
	}

	result, err := withTelemetry(s, ctx, "CloseIfDue", fmt.Sprintf("force=%t", force), func(ctx context.Context) (results.OperationResult[*roundtypes.CloseResult, error], error) {
		result, err := runInTx(s, ctx, closeTx)
		if err != nil || !result.IsSuccess() {
			return result, err
		}

		res := *result.Success
		if s.metrics != nil {
			s.metrics.RecordRoundClosed(ctx, string(res.Outcome))
		}
		if res.Outcome == roundtypes.CloseOutcomeClosed {
			s.applyCloseEffects(ctx, res)
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// closeIfDueLogic is the transactional part of the close.
func (s *RoundService) closeIfDueLogic(ctx context.Context, db bun.IDB, force bool) (results.OperationResult[*roundtypes.CloseResult, error], error) {
	round, err := s.repo.GetActiveRound(ctx, db)
	if err != nil {
		if errors.Is(err, rounddb.ErrNoActiveRound) {
			return closeSuccess(&roundtypes.CloseResult{Outcome: roundtypes.CloseOutcomeNoActiveRound}), nil
		}
		return closeFailure(fmt.Errorf("failed to read active round: %w", err))
	}

	now := s.clock.Now()
	if !force && now.Before(round.EndTime) {
		return closeSuccess(&roundtypes.CloseResult{Outcome: roundtypes.CloseOutcomeNotDue}), nil
	}

	// Claim the transition first. The loser of a concurrent close exits here
	// having written nothing.
	won, err := s.repo.CompleteRound(ctx, db, round.ID)
	if err != nil {
		return closeFailure(fmt.Errorf("failed to complete round: %w", err))
	}
	if !won {
		return closeSuccess(&roundtypes.CloseResult{Outcome: roundtypes.CloseOutcomeLostRace}), nil
	}

	standings, err := s.loadStandings(ctx, db, round.ID)
	if err != nil {
		return closeFailure(err)
	}

	winners, err := s.persistWinners(ctx, db, round, standings)
	if err != nil {
		return closeFailure(err)
	}

	cooldownSet, cooldownIDs, err := s.loadCooldownSet(ctx, db, round.RoundNumber)
	if err != nil {
		return closeFailure(err)
	}

	champions := make(roundtypes.LeagueStandings, len(leagues))
	for _, league := range leagues {
		champions[league] = EligibleChampions(standings[league], cooldownSet, s.config.ChampionCount)
	}

	picks := mergeChampions(champions)
	recipients := make([]*rounddb.RoleRecipient, 0, len(picks))
	recipientIDs := make([]sharedtypes.DiscordID, 0, len(picks))
	for _, pick := range picks {
		recipients = append(recipients, &rounddb.RoleRecipient{
			RoundID:    round.ID,
			UserID:     pick.UserID,
			LeagueType: pick.League,
		})
		recipientIDs = append(recipientIDs, pick.UserID)
	}
	if err := s.repo.InsertRecipients(ctx, db, recipients); err != nil {
		return closeFailure(fmt.Errorf("failed to persist role recipients: %w", err))
	}

	next := &rounddb.Round{
		RoundNumber: round.RoundNumber + 1,
		StartTime:   now,
		EndTime:     roundutil.NextSundayNoon(now),
		Status:      sharedtypes.RoundStatusActive,
	}
	if err := s.repo.CreateRound(ctx, db, next); err != nil {
		return closeFailure(fmt.Errorf("failed to create next round: %w", err))
	}

	closedInfo := round.ToInfo()
	closedInfo.Status = sharedtypes.RoundStatusCompleted
	nextInfo := next.ToInfo()

	res := &roundtypes.CloseResult{
		Outcome:       roundtypes.CloseOutcomeClosed,
		ClosedRound:   closedInfo,
		NewRound:      nextInfo,
		Winners:       winners,
		NewRecipients: recipientIDs,
		CooldownSet:   cooldownIDs,
		Standings:     standings,
		Champions:     champions,
		Announcement:  BuildAnnouncement(closedInfo, nextInfo, standings, champions, cooldownSet),
	}
	return closeSuccess(res), nil
}

// loadStandings reads each league board's top rows through the given handle.
func (s *RoundService) loadStandings(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) (roundtypes.LeagueStandings, error) {
	standings := make(roundtypes.LeagueStandings, len(leagues))
	for _, league := range leagues {
		rows, err := s.standings.GetBoard(ctx, db, roundID, league.Board(), s.config.ActiveDayBonus, closeStandingsLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s standings: %w", league, err)
		}
		entries := make([]leaderboardtypes.RankedEntry, 0, len(rows))
		for i := range rows {
			entries = append(entries, rows[i].ToEntry())
		}
		standings[league] = entries
	}
	return standings, nil
}

// persistWinners snapshots each league's podium and returns the records.
func (s *RoundService) persistWinners(ctx context.Context, db bun.IDB, round *rounddb.Round, standings roundtypes.LeagueStandings) ([]roundtypes.WinnerRecord, error) {
	var rows []*rounddb.RoundWinner
	for _, league := range leagues {
		podium := standings[league]
		if len(podium) > s.config.ChampionCount {
			podium = podium[:s.config.ChampionCount]
		}
		for _, entry := range podium {
			rows = append(rows, &rounddb.RoundWinner{
				RoundID:     round.ID,
				RoundNumber: round.RoundNumber,
				UserID:      entry.UserID,
				Username:    entry.Username,
				LeagueType:  league,
				Rank:        entry.Rank,
				TotalScore:  entry.TotalScore,
				ActiveDays:  entry.ActiveDays,
			})
		}
	}
	if err := s.repo.InsertWinners(ctx, db, rows); err != nil {
		return nil, fmt.Errorf("failed to persist winners: %w", err)
	}

	records := make([]roundtypes.WinnerRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.ToRecord())
	}
	return records, nil
}

// loadCooldownSet resolves the recipients of the most recently completed
// round before the given one. First close ever means an empty set.
func (s *RoundService) loadCooldownSet(ctx context.Context, db bun.IDB, before sharedtypes.RoundNumber) (map[sharedtypes.DiscordID]struct{}, []sharedtypes.DiscordID, error) {
	prev, err := s.repo.GetLatestCompletedBefore(ctx, db, before)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return map[sharedtypes.DiscordID]struct{}{}, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to find previous completed round: %w", err)
	}

	recipients, err := s.repo.GetRecipientsByRound(ctx, db, prev.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load previous recipients: %w", err)
	}

	set := make(map[sharedtypes.DiscordID]struct{}, len(recipients))
	ids := make([]sharedtypes.DiscordID, 0, len(recipients))
	for i := range recipients {
		if _, dup := set[recipients[i].UserID]; dup {
			continue
		}
		set[recipients[i].UserID] = struct{}{}
		ids = append(ids, recipients[i].UserID)
	}
	return set, ids, nil
}

// applyCloseEffects runs the post-commit side effects: champion role
// rotation, cache invalidation, and the announcement. Everything here is
// best effort; failures are logged per user and never surface to the caller,
// because the committed rows are the source of truth either way.
func (s *RoundService) applyCloseEffects(ctx context.Context, res *roundtypes.CloseResult) {
	if s.notifier != nil {
		for _, userID := range res.CooldownSet {
			if err := s.notifier.RevokeChampionRole(ctx, userID); err != nil {
				s.logger.WarnContext(ctx, "Failed to revoke champion role",
					attr.ExtractCorrelationID(ctx),
					attr.String("user_id", string(userID)),
					attr.Error(err),
				)
				if s.metrics != nil {
					s.metrics.RecordRoleCallFailure(ctx, "revoke")
				}
			}
		}
		for _, userID := range res.NewRecipients {
			if err := s.notifier.GrantChampionRole(ctx, userID); err != nil {
				s.logger.WarnContext(ctx, "Failed to grant champion role",
					attr.ExtractCorrelationID(ctx),
					attr.String("user_id", string(userID)),
					attr.Error(err),
				)
				if s.metrics != nil {
					s.metrics.RecordRoleCallFailure(ctx, "grant")
				}
			}
		}
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate()
	}

	if s.notifier != nil {
		if err := s.notifier.Announce(ctx, res.Announcement); err != nil {
			s.logger.WarnContext(ctx, "Failed to send round announcement",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
		}
	}
}

func closeSuccess(res *roundtypes.CloseResult) results.OperationResult[*roundtypes.CloseResult, error] {
	return results.SuccessResult[*roundtypes.CloseResult, error](res)
}

func closeFailure(err error) (results.OperationResult[*roundtypes.CloseResult, error], error) {
	return results.OperationResult[*roundtypes.CloseResult, error]{}, err
}
