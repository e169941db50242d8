package userservice

import (
	"context"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	usertypes "github.com/hablemos-club/league-bot/app/shared/types/user"
)

// JoinRequest carries the fields a signup may set.
type JoinRequest struct {
	UserID          sharedtypes.DiscordID
	Username        string
	LearningSpanish bool
	LearningEnglish bool
}

// JoinOutcome reports the member state after a signup plus whether the user
// was already known (rejoin).
type JoinOutcome struct {
	Member   *usertypes.MemberInfo
	Rejoined bool
}

// Service defines the interface for member operations.
type Service interface {
	// Join opts a user into the league, creating the member on first contact.
	Join(ctx context.Context, req JoinRequest) (*JoinOutcome, error)

	// Leave opts a user out; scoring history is preserved.
	Leave(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error)

	// Ban excludes a member from scoring until unbanned.
	Ban(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error)

	// Unban lifts a ban.
	Unban(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error)

	// GetMember retrieves the current member state.
	GetMember(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error)
}
