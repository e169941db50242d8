package userevents

import (
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	usertypes "github.com/hablemos-club/league-bot/app/shared/types/user"
)

// Topics consumed and produced by the user module.
const (
	SignupRequestedV1 = "league.user.signup.requested.v1"
	SignupSucceededV1 = "league.user.signup.succeeded.v1"
	SignupFailedV1    = "league.user.signup.failed.v1"

	LeaveRequestedV1 = "league.user.leave.requested.v1"
	LeaveSucceededV1 = "league.user.leave.succeeded.v1"
	LeaveFailedV1    = "league.user.leave.failed.v1"

	BanRequestedV1 = "league.user.ban.requested.v1"
	BanAppliedV1   = "league.user.ban.applied.v1"
	BanFailedV1    = "league.user.ban.failed.v1"

	UnbanRequestedV1 = "league.user.unban.requested.v1"
	UnbanAppliedV1   = "league.user.unban.applied.v1"
	UnbanFailedV1    = "league.user.unban.failed.v1"
)

// SignupRequestedPayloadV1 asks to opt a user into the league.
type SignupRequestedPayloadV1 struct {
	UserID          sharedtypes.DiscordID `json:"user_id"`
	Username        string                `json:"username"`
	LearningSpanish bool                  `json:"learning_spanish"`
	LearningEnglish bool                  `json:"learning_english"`
}

// SignupSucceededPayloadV1 carries the resulting member state.
type SignupSucceededPayloadV1 struct {
	Member   usertypes.MemberInfo `json:"member"`
	Rejoined bool                 `json:"rejoined"`
}

// SignupFailedPayloadV1 explains a rejected signup.
type SignupFailedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
	Reason string                `json:"reason"`
}

// LeaveRequestedPayloadV1 asks to opt a user out.
type LeaveRequestedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
}

// LeaveSucceededPayloadV1 confirms the opt-out.
type LeaveSucceededPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
}

// LeaveFailedPayloadV1 explains a rejected opt-out.
type LeaveFailedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
	Reason string                `json:"reason"`
}

// BanRequestedPayloadV1 asks to ban a member from scoring.
type BanRequestedPayloadV1 struct {
	UserID      sharedtypes.DiscordID `json:"user_id"`
	RequestedBy sharedtypes.DiscordID `json:"requested_by"`
}

// BanAppliedPayloadV1 confirms a ban.
type BanAppliedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
}

// BanFailedPayloadV1 explains a rejected ban.
type BanFailedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
	Reason string                `json:"reason"`
}

// UnbanRequestedPayloadV1 asks to lift a ban.
type UnbanRequestedPayloadV1 struct {
	UserID      sharedtypes.DiscordID `json:"user_id"`
	RequestedBy sharedtypes.DiscordID `json:"requested_by"`
}

// UnbanAppliedPayloadV1 confirms an unban.
type UnbanAppliedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
}

// UnbanFailedPayloadV1 explains a rejected unban.
type UnbanFailedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
	Reason string                `json:"reason"`
}
