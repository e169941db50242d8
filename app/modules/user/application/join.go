package userservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// Common domain errors for member operations.
var (
	ErrInvalidUserID      = errors.New("user ID is required")
	ErrNoLanguageSelected = errors.New("at least one learning language is required")
)

// Join opts a user into the league, creating the member on first contact.
// A returning member keeps their ban state; only opt-in, username, and
// learning flags are refreshed.
func (s *UserService) Join(ctx context.Context, req JoinRequest) (*JoinOutcome, error) {
	joinTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*JoinOutcome, error], error) {
		return s.joinLogic(ctx, db, req)
	}

	result, err := withTelemetry(s, ctx, "Join", string(req.UserID), func(ctx context.Context) (results.OperationResult[*JoinOutcome, error], error) {
		return runInTx(s, ctx, joinTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}

	if s.metrics != nil {
		s.metrics.RecordMembershipChange(ctx, "join")
	}
	return *result.Success, nil
}

// joinLogic contains the core logic.
func (s *UserService) joinLogic(ctx context.Context, db bun.IDB, req JoinRequest) (results.OperationResult[*JoinOutcome, error], error) {
	if req.UserID == "" {
		return results.FailureResult[*JoinOutcome, error](ErrInvalidUserID), nil
	}
	if !req.LearningSpanish && !req.LearningEnglish {
		return results.FailureResult[*JoinOutcome, error](ErrNoLanguageSelected), nil
	}

	existing, err := s.repo.GetByUserID(ctx, db, req.UserID)
	if err != nil && !errors.Is(err, userdb.ErrNotFound) {
		return results.OperationResult[*JoinOutcome, error]{}, fmt.Errorf("failed to check existing member: %w", err)
	}

	rejoined := existing != nil
	member := existing
	if member == nil {
		member = &userdb.Member{UserID: req.UserID}
	}
	member.Username = req.Username
	member.OptedIn = true
	member.LearningSpanish = req.LearningSpanish
	member.LearningEnglish = req.LearningEnglish

	if err := s.repo.Upsert(ctx, db, member); err != nil {
		return results.OperationResult[*JoinOutcome, error]{}, fmt.Errorf("failed to save member: %w", err)
	}

	return results.SuccessResult[*JoinOutcome, error](&JoinOutcome{
		Member:   member.ToInfo(),
		Rejoined: rejoined,
	}), nil
}
