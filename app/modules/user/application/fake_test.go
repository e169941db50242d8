package userservice

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// ------------------------
// Fake Member Repo
// ------------------------

type FakeMemberRepo struct {
	trace []string

	GetByUserIDFunc func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error)
	UpsertFunc      func(ctx context.Context, db bun.IDB, member *userdb.Member) error
	SetOptedInFunc  func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, optedIn bool) error
	SetBannedFunc   func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, banned bool) error
}

func NewFakeMemberRepo() *FakeMemberRepo {
	return &FakeMemberRepo{
		trace: []string{},
	}
}

func (f *FakeMemberRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeMemberRepo) GetByUserID(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error) {
	f.record("GetByUserID")
	if f.GetByUserIDFunc != nil {
		return f.GetByUserIDFunc(ctx, db, userID)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeMemberRepo) Upsert(ctx context.Context, db bun.IDB, member *userdb.Member) error {
	f.record("Upsert")
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, db, member)
	}
	return nil
}

func (f *FakeMemberRepo) SetOptedIn(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, optedIn bool) error {
	f.record("SetOptedIn")
	if f.SetOptedInFunc != nil {
		return f.SetOptedInFunc(ctx, db, userID, optedIn)
	}
	return nil
}

func (f *FakeMemberRepo) SetBanned(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, banned bool) error {
	f.record("SetBanned")
	if f.SetBannedFunc != nil {
		return f.SetBannedFunc(ctx, db, userID, banned)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeMemberRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ userdb.Repository = (*FakeMemberRepo)(nil)
