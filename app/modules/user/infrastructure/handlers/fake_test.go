package userhandlers

import (
	"context"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	usertypes "github.com/hablemos-club/league-bot/app/shared/types/user"

	userservice "github.com/hablemos-club/league-bot/app/modules/user/application"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// ------------------------
// Fake User Service
// ------------------------

type FakeUserService struct {
	trace []string

	JoinFunc      func(ctx context.Context, req userservice.JoinRequest) (*userservice.JoinOutcome, error)
	LeaveFunc     func(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error)
	BanFunc       func(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error)
	UnbanFunc     func(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error)
	GetMemberFunc func(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error)
}

func NewFakeUserService() *FakeUserService {
	return &FakeUserService{
		trace: []string{},
	}
}

func (f *FakeUserService) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Service Interface Implementation ---

func (f *FakeUserService) Join(ctx context.Context, req userservice.JoinRequest) (*userservice.JoinOutcome, error) {
	f.record("Join")
	if f.JoinFunc != nil {
		return f.JoinFunc(ctx, req)
	}
	return &userservice.JoinOutcome{Member: &usertypes.MemberInfo{UserID: req.UserID, OptedIn: true}}, nil
}

func (f *FakeUserService) Leave(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error) {
	f.record("Leave")
	if f.LeaveFunc != nil {
		return f.LeaveFunc(ctx, userID)
	}
	return &usertypes.MemberInfo{UserID: userID}, nil
}

func (f *FakeUserService) Ban(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error) {
	f.record("Ban")
	if f.BanFunc != nil {
		return f.BanFunc(ctx, userID)
	}
	return &usertypes.MemberInfo{UserID: userID, Banned: true}, nil
}

func (f *FakeUserService) Unban(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error) {
	f.record("Unban")
	if f.UnbanFunc != nil {
		return f.UnbanFunc(ctx, userID)
	}
	return &usertypes.MemberInfo{UserID: userID}, nil
}

func (f *FakeUserService) GetMember(ctx context.Context, userID sharedtypes.DiscordID) (*usertypes.MemberInfo, error) {
	f.record("GetMember")
	if f.GetMemberFunc != nil {
		return f.GetMemberFunc(ctx, userID)
	}
	return nil, userdb.ErrNotFound
}

// --- Accessors for assertions ---

func (f *FakeUserService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ userservice.Service = (*FakeUserService)(nil)
