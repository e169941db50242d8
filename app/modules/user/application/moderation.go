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

// Ban excludes a member from scoring until unbanned.
func (s *UserService) Ban(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error) {
	info, err := s.setBanState(ctx, "Ban", userID, true)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordMembershipChange(ctx, "ban")
	}
	return info, nil
}

// Unban lifts a ban.
func (s *UserService) Unban(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error) {
	info, err := s.setBanState(ctx, "Unban", userID, false)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordMembershipChange(ctx, "unban")
	}
	return info, nil
}

func (s *UserService) setBanState(ctx context.Context, operationName string, userID sharedtypes.DiscordID, banned bool) (*usertypes.MemberInfo, error) {
	banTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*usertypes.MemberInfo, error], error) {
		return s.setBanStateLogic(ctx, db, userID, banned)
	}

	result, err := withTelemetry(s, ctx, operationName, string(userID), func(ctx context.Context) (results.OperationResult[*usertypes.MemberInfo, error], error) {
		return runInTx(s, ctx, banTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// setBanStateLogic contains the core logic.
func (s *UserService) setBanStateLogic(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, banned bool) (results.OperationResult[*usertypes.MemberInfo, error], error) {
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

	if err := s.repo.SetBanned(ctx, db, userID, banned); err != nil {
		return results.OperationResult[*usertypes.MemberInfo, error]{}, fmt.Errorf("failed to update ban state: %w", err)
	}

	member.Banned = banned
	return results.SuccessResult[*usertypes.MemberInfo, error](member.ToInfo()), nil
}
