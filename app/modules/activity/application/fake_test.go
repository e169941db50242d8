package activityservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	activitydb "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/repositories"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// ------------------------
// Fake Activity Repo
// ------------------------

type FakeActivityRepo struct {
	trace    []string
	inserted []*activitydb.ActivityEvent

	InsertEventFunc           func(ctx context.Context, db bun.IDB, event *activitydb.ActivityEvent) error
	CountEventsSinceFunc      func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, since time.Time) (int, error)
	GetRecentEventsFunc       func(ctx context.Context, db bun.IDB, limit int) ([]activitydb.AuditRow, error)
	IsChannelExcludedFunc     func(ctx context.Context, db bun.IDB, channelID sharedtypes.ChannelID) (bool, error)
	AddExcludedChannelFunc    func(ctx context.Context, db bun.IDB, channel *activitydb.ExcludedChannel) error
	RemoveExcludedChannelFunc func(ctx context.Context, db bun.IDB, channelID sharedtypes.ChannelID) error
	ListExcludedChannelsFunc  func(ctx context.Context, db bun.IDB) ([]activitydb.ExcludedChannel, error)
}

func NewFakeActivityRepo() *FakeActivityRepo {
	return &FakeActivityRepo{
		trace: []string{},
	}
}

func (f *FakeActivityRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeActivityRepo) InsertEvent(ctx context.Context, db bun.IDB, event *activitydb.ActivityEvent) error {
	f.record("InsertEvent")
	if f.InsertEventFunc != nil {
		if err := f.InsertEventFunc(ctx, db, event); err != nil {
			return err
		}
	}
	f.inserted = append(f.inserted, event)
	return nil
}

func (f *FakeActivityRepo) CountEventsSince(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, since time.Time) (int, error) {
	f.record("CountEventsSince")
	if f.CountEventsSinceFunc != nil {
		return f.CountEventsSinceFunc(ctx, db, userID, since)
	}
	return 0, nil
}

func (f *FakeActivityRepo) GetRecentEvents(ctx context.Context, db bun.IDB, limit int) ([]activitydb.AuditRow, error) {
	f.record("GetRecentEvents")
	if f.GetRecentEventsFunc != nil {
		return f.GetRecentEventsFunc(ctx, db, limit)
	}
	return nil, nil
}

func (f *FakeActivityRepo) IsChannelExcluded(ctx context.Context, db bun.IDB, channelID sharedtypes.ChannelID) (bool, error) {
	f.record("IsChannelExcluded")
	if f.IsChannelExcludedFunc != nil {
		return f.IsChannelExcludedFunc(ctx, db, channelID)
	}
	return false, nil
}

func (f *FakeActivityRepo) AddExcludedChannel(ctx context.Context, db bun.IDB, channel *activitydb.ExcludedChannel) error {
	f.record("AddExcludedChannel")
	if f.AddExcludedChannelFunc != nil {
		return f.AddExcludedChannelFunc(ctx, db, channel)
	}
	if channel.AddedAt.IsZero() {
		channel.AddedAt = time.Now()
	}
	return nil
}

func (f *FakeActivityRepo) RemoveExcludedChannel(ctx context.Context, db bun.IDB, channelID sharedtypes.ChannelID) error {
	f.record("RemoveExcludedChannel")
	if f.RemoveExcludedChannelFunc != nil {
		return f.RemoveExcludedChannelFunc(ctx, db, channelID)
	}
	return nil
}

func (f *FakeActivityRepo) ListExcludedChannels(ctx context.Context, db bun.IDB) ([]activitydb.ExcludedChannel, error) {
	f.record("ListExcludedChannels")
	if f.ListExcludedChannelsFunc != nil {
		return f.ListExcludedChannelsFunc(ctx, db)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakeActivityRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeActivityRepo) Inserted() []*activitydb.ActivityEvent {
	out := make([]*activitydb.ActivityEvent, len(f.inserted))
	copy(out, f.inserted)
	return out
}

// Ensure the fake actually satisfies the interface
var _ activitydb.Repository = (*FakeActivityRepo)(nil)

// ------------------------
// Fake collaborators
// ------------------------

type FakeMemberSource struct {
	GetByUserIDFunc func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error)
}

func (f *FakeMemberSource) GetByUserID(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error) {
	if f.GetByUserIDFunc != nil {
		return f.GetByUserIDFunc(ctx, db, userID)
	}
	return nil, userdb.ErrNotFound
}

var _ MemberSource = (*FakeMemberSource)(nil)

type FakeRoundSource struct {
	GetActiveRoundFunc func(ctx context.Context, db bun.IDB) (*rounddb.Round, error)
}

func (f *FakeRoundSource) GetActiveRound(ctx context.Context, db bun.IDB) (*rounddb.Round, error) {
	if f.GetActiveRoundFunc != nil {
		return f.GetActiveRoundFunc(ctx, db)
	}
	return nil, rounddb.ErrNoActiveRound
}

var _ RoundSource = (*FakeRoundSource)(nil)

type FakeDetector struct {
	DetectFunc func(ctx context.Context, text string) (sharedtypes.LanguageCode, error)
}

func (f *FakeDetector) Detect(ctx context.Context, text string) (sharedtypes.LanguageCode, error) {
	if f.DetectFunc != nil {
		return f.DetectFunc(ctx, text)
	}
	return sharedtypes.LangSpanish, nil
}

var _ Detector = (*FakeDetector)(nil)

type FakeInvalidator struct {
	calls int
}

func (f *FakeInvalidator) Invalidate() {
	f.calls++
}

func (f *FakeInvalidator) Calls() int {
	return f.calls
}

var _ CacheInvalidator = (*FakeInvalidator)(nil)
