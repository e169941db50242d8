package activityhandlers

import (
	"context"

	activitytypes "github.com/hablemos-club/league-bot/app/shared/types/activity"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	activityservice "github.com/hablemos-club/league-bot/app/modules/activity/application"
)

// ------------------------
// Fake Activity Service
// ------------------------

type FakeActivityService struct {
	trace []string

	ProcessMessageFunc       func(ctx context.Context, msg activitytypes.InboundMessage) (*activitytypes.GateDecision, error)
	ValidateMessageFunc      func(ctx context.Context, req activityservice.ValidateRequest) (*activitytypes.GateDecision, error)
	ExcludeChannelFunc       func(ctx context.Context, req activityservice.ExcludeChannelRequest) (*activitytypes.ExcludedChannelInfo, error)
	IncludeChannelFunc       func(ctx context.Context, channelID sharedtypes.ChannelID) error
	ListExcludedChannelsFunc func(ctx context.Context) ([]activitytypes.ExcludedChannelInfo, error)
	GetRecentActivityFunc    func(ctx context.Context, limit int) ([]activitytypes.ActivityRecord, error)
}

func NewFakeActivityService() *FakeActivityService {
	return &FakeActivityService{
		trace: []string{},
	}
}

func (f *FakeActivityService) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Service Interface Implementation ---

func (f *FakeActivityService) ProcessMessage(ctx context.Context, msg activitytypes.InboundMessage) (*activitytypes.GateDecision, error) {
	f.record("ProcessMessage")
	if f.ProcessMessageFunc != nil {
		return f.ProcessMessageFunc(ctx, msg)
	}
	return &activitytypes.GateDecision{Accepted: true, Language: sharedtypes.LangSpanish}, nil
}

func (f *FakeActivityService) ValidateMessage(ctx context.Context, req activityservice.ValidateRequest) (*activitytypes.GateDecision, error) {
	f.record("ValidateMessage")
	if f.ValidateMessageFunc != nil {
		return f.ValidateMessageFunc(ctx, req)
	}
	return &activitytypes.GateDecision{Accepted: true, Language: sharedtypes.LangSpanish}, nil
}

func (f *FakeActivityService) ExcludeChannel(ctx context.Context, req activityservice.ExcludeChannelRequest) (*activitytypes.ExcludedChannelInfo, error) {
	f.record("ExcludeChannel")
	if f.ExcludeChannelFunc != nil {
		return f.ExcludeChannelFunc(ctx, req)
	}
	return &activitytypes.ExcludedChannelInfo{
		ChannelID:   req.ChannelID,
		ChannelName: req.ChannelName,
		AddedBy:     req.RequestedBy,
	}, nil
}

func (f *FakeActivityService) IncludeChannel(ctx context.Context, channelID sharedtypes.ChannelID) error {
	f.record("IncludeChannel")
	if f.IncludeChannelFunc != nil {
		return f.IncludeChannelFunc(ctx, channelID)
	}
	return nil
}

func (f *FakeActivityService) ListExcludedChannels(ctx context.Context) ([]activitytypes.ExcludedChannelInfo, error) {
	f.record("ListExcludedChannels")
	if f.ListExcludedChannelsFunc != nil {
		return f.ListExcludedChannelsFunc(ctx)
	}
	return nil, nil
}

func (f *FakeActivityService) GetRecentActivity(ctx context.Context, limit int) ([]activitytypes.ActivityRecord, error) {
	f.record("GetRecentActivity")
	if f.GetRecentActivityFunc != nil {
		return f.GetRecentActivityFunc(ctx, limit)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakeActivityService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ activityservice.Service = (*FakeActivityService)(nil)
