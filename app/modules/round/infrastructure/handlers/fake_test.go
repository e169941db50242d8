package roundhandlers

import (
	"context"
	"time"

	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	roundservice "github.com/hablemos-club/league-bot/app/modules/round/application"
)

// FakeRoundService provides defaults that succeed; override the Func fields
// to steer individual tests.
type FakeRoundService struct {
	trace []string

	CloseIfDueFunc         func(ctx context.Context, force bool) (*roundtypes.CloseResult, error)
	EnsureActiveRoundFunc  func(ctx context.Context) (*roundtypes.RoundInfo, error)
	GetCurrentRoundFunc    func(ctx context.Context) (*roundtypes.RoundInfo, error)
	PreviewCloseFunc       func(ctx context.Context) (*roundtypes.ClosePreview, error)
	RescheduleRoundFunc    func(ctx context.Context, req roundservice.RescheduleRequest) (*roundtypes.RoundInfo, error)
	SeedRoleRecipientsFunc func(ctx context.Context, req roundservice.SeedRequest) (*roundservice.SeedResult, error)
	ExportRoundReportFunc  func(ctx context.Context, roundNumber sharedtypes.RoundNumber) (*roundservice.RoundReport, error)
}

func NewFakeRoundService() *FakeRoundService {
	return &FakeRoundService{
		trace: []string{},
	}
}

func (f *FakeRoundService) record(step string) {
	f.trace = append(f.trace, step)
}

func fakeRoundInfo(number sharedtypes.RoundNumber) *roundtypes.RoundInfo {
	start := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	return &roundtypes.RoundInfo{
		ID:          sharedtypes.RoundID(int64(number) + 3),
		RoundNumber: number,
		StartTime:   start,
		EndTime:     start.AddDate(0, 0, 7),
		Status:      sharedtypes.RoundStatusActive,
	}
}

func (f *FakeRoundService) CloseIfDue(ctx context.Context, force bool) (*roundtypes.CloseResult, error) {
	f.record("CloseIfDue")
	if f.CloseIfDueFunc != nil {
		return f.CloseIfDueFunc(ctx, force)
	}
	closed := fakeRoundInfo(3)
	closed.Status = sharedtypes.RoundStatusCompleted
	return &roundtypes.CloseResult{
		Outcome:     roundtypes.CloseOutcomeClosed,
		ClosedRound: closed,
		NewRound:    fakeRoundInfo(4),
		Winners: []roundtypes.WinnerRecord{
			{RoundNumber: 3, UserID: "111111111111111111", Username: "maria", LeagueType: sharedtypes.LeagueSpanish, Rank: 1, TotalScore: 52, ActiveDays: 3},
		},
		NewRecipients: []sharedtypes.DiscordID{"111111111111111111"},
		CooldownSet:   []sharedtypes.DiscordID{},
		Announcement:  "🏁 Round 3 has ended!",
	}, nil
}

func (f *FakeRoundService) EnsureActiveRound(ctx context.Context) (*roundtypes.RoundInfo, error) {
	f.record("EnsureActiveRound")
	if f.EnsureActiveRoundFunc != nil {
		return f.EnsureActiveRoundFunc(ctx)
	}
	return fakeRoundInfo(4), nil
}

func (f *FakeRoundService) GetCurrentRound(ctx context.Context) (*roundtypes.RoundInfo, error) {
	f.record("GetCurrentRound")
	if f.GetCurrentRoundFunc != nil {
		return f.GetCurrentRoundFunc(ctx)
	}
	return fakeRoundInfo(4), nil
}

func (f *FakeRoundService) PreviewClose(ctx context.Context) (*roundtypes.ClosePreview, error) {
	f.record("PreviewClose")
	if f.PreviewCloseFunc != nil {
		return f.PreviewCloseFunc(ctx)
	}
	return &roundtypes.ClosePreview{
		Round:       fakeRoundInfo(4),
		CooldownSet: []sharedtypes.DiscordID{"222222222222222222"},
		Standings: roundtypes.LeagueStandings{
			sharedtypes.LeagueSpanish: []leaderboardtypes.RankedEntry{
				{Rank: 1, UserID: "111111111111111111", Username: "maria", TotalScore: 52, ActiveDays: 3},
			},
			sharedtypes.LeagueEnglish: []leaderboardtypes.RankedEntry{},
		},
		Champions: roundtypes.LeagueStandings{
			sharedtypes.LeagueSpanish: []leaderboardtypes.RankedEntry{
				{Rank: 1, UserID: "111111111111111111", Username: "maria", TotalScore: 52, ActiveDays: 3},
			},
			sharedtypes.LeagueEnglish: []leaderboardtypes.RankedEntry{},
		},
		Announcement: "🏁 Round 4 has ended!",
	}, nil
}

func (f *FakeRoundService) RescheduleRound(ctx context.Context, req roundservice.RescheduleRequest) (*roundtypes.RoundInfo, error) {
	f.record("RescheduleRound")
	if f.RescheduleRoundFunc != nil {
		return f.RescheduleRoundFunc(ctx, req)
	}
	info := fakeRoundInfo(4)
	info.EndTime = time.Date(2026, time.September, 2, 15, 30, 0, 0, time.UTC)
	return info, nil
}

func (f *FakeRoundService) SeedRoleRecipients(ctx context.Context, req roundservice.SeedRequest) (*roundservice.SeedResult, error) {
	f.record("SeedRoleRecipients")
	if f.SeedRoleRecipientsFunc != nil {
		return f.SeedRoleRecipientsFunc(ctx, req)
	}
	return &roundservice.SeedResult{RoundNumber: 3, Seeded: len(req.UserIDs)}, nil
}

func (f *FakeRoundService) ExportRoundReport(ctx context.Context, roundNumber sharedtypes.RoundNumber) (*roundservice.RoundReport, error) {
	f.record("ExportRoundReport")
	if f.ExportRoundReportFunc != nil {
		return f.ExportRoundReportFunc(ctx, roundNumber)
	}
	return &roundservice.RoundReport{
		RoundNumber: roundNumber,
		Filename:    "round-3-report.xlsx",
		Data:        []byte("PK"),
	}, nil
}

func (f *FakeRoundService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// FakeCloseScheduler records schedule and cancel calls.
type FakeCloseScheduler struct {
	Scheduled []sharedtypes.RoundID
	Cancelled []sharedtypes.RoundID

	ScheduleFunc func(ctx context.Context, roundID sharedtypes.RoundID, endTime time.Time) error
	CancelFunc   func(ctx context.Context, roundID sharedtypes.RoundID) error
}

func (f *FakeCloseScheduler) ScheduleRoundClose(ctx context.Context, roundID sharedtypes.RoundID, endTime time.Time) error {
	f.Scheduled = append(f.Scheduled, roundID)
	if f.ScheduleFunc != nil {
		return f.ScheduleFunc(ctx, roundID, endTime)
	}
	return nil
}

func (f *FakeCloseScheduler) CancelRoundClose(ctx context.Context, roundID sharedtypes.RoundID) error {
	f.Cancelled = append(f.Cancelled, roundID)
	if f.CancelFunc != nil {
		return f.CancelFunc(ctx, roundID)
	}
	return nil
}

// Ensure the fakes actually satisfy the interfaces
var (
	_ roundservice.Service = (*FakeRoundService)(nil)
	_ CloseScheduler       = (*FakeCloseScheduler)(nil)
)
