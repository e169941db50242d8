package userservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	usertypes "github.com/hablemos-club/league-bot/app/shared/types/user"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// Leave opts a user out of the league. The row stays so recorded activity
// keeps its author; a later Join restores participation.
func (s *UserService) Leave(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error) {
	leaveTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*usertypes.MemberInfo, error], error) {
		return s.leaveLogic(ctx, db, userID)
	}

	result, err := withTelemetry(s, ctx, "Leave", string(userID), func(ctx context.Context) (results.OperationResult[*usertypes.MemberInfo, error], error) {
		return runInTx(s, ctx, leaveTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}

	if s.metrics != nil {
		s.metrics.RecordMembershipChange(ctx, "leave")
	}
	return *result.Success, nil
}

// leaveLogic contains the core logic.
func (s *UserService) leaveLogic(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (results.OperationResult[*usertypes.MemberInfo, error], error) {
	if userID == "" {
		return results.FailureResult[*usertypes.MemberInfo, error](ErrInvalidUserID), nil
	}

	member, err := s.repo.GetByUserID(ctx, db, userID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.FailureResult[*usertypes.MemberInfo, error](err), nil
		}
		return results.OperationResult[*usertypes.MemberInfo, error]{}, fmt.Errorf("failed to get member: %w", err)
	}

	if err := s.repo.SetOptedIn(ctx, db, userID, false); err != nil {
		return results.OperationResult[*usertypes.MemberInfo, error]{}, fmt.Errorf("failed to opt member out: %w", err)
	}

	member.OptedIn = false
	return results.SuccessResult[*usertypes.MemberInfo, error](member.ToInfo()), nil
}

// GetMember retrieves the current member state.
func (s *UserService) GetMember(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error) {
	getTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*usertypes.MemberInfo, error], error) {
		member, err := s.repo.GetByUserID(ctx, db, userID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return results.FailureResult[*usertypes.MemberInfo, error](err), nil
			}
			return results.OperationResult[*usertypes.MemberInfo, error]{}, fmt.Errorf("failed to get member: %w", err)
		}
		return results.SuccessResult[*usertypes.MemberInfo, error](member.ToInfo()), nil
	}

	result, err := withTelemetry(s, ctx, "GetMember", string(userID), func(ctx context.Context) (results.OperationResult[*usertypes.MemberInfo, error], error) {
		return runInTx(s, ctx, getTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}
