package userhandlers

import (
	"context"

	userevents "github.com/hablemos-club/league-bot/app/shared/events/user"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"
)

// Handlers defines the interface for user event handlers.
type Handlers interface {
	// HandleSignupRequest opts a user into the league.
	HandleSignupRequest(ctx context.Context, payload *userevents.SignupRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleLeaveRequest opts a user out of the league.
	HandleLeaveRequest(ctx context.Context, payload *userevents.LeaveRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleBanRequest bans a member from scoring.
	HandleBanRequest(ctx context.Context, payload *userevents.BanRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleUnbanRequest lifts a ban.
	HandleUnbanRequest(ctx context.Context, payload *userevents.UnbanRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
