package activityservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	activitydb "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/repositories"
)

func TestExcludeChannel(t *testing.T) {
	tests := []struct {
		name        string
		setupRepo   func(*FakeActivityRepo)
		req         ExcludeChannelRequest
		wantErr     bool
		wantErrType error
	}{
		{
			name:      "adds channel to exclusion list",
			setupRepo: func(f *FakeActivityRepo) {},
			req: ExcludeChannelRequest{
				ChannelID:   "222222222222222222",
				ChannelName: "memes",
				RequestedBy: "444444444444444444",
			},
		},
		{
			name:        "missing channel ID",
			setupRepo:   func(f *FakeActivityRepo) {},
			req:         ExcludeChannelRequest{ChannelName: "memes"},
			wantErr:     true,
			wantErrType: ErrInvalidChannelID,
		},
		{
			name: "database error",
			setupRepo: func(f *FakeActivityRepo) {
				f.AddExcludedChannelFunc = func(ctx context.Context, db bun.IDB, channel *activitydb.ExcludedChannel) error {
					return errors.New("database connection failed")
				}
			},
			req:     ExcludeChannelRequest{ChannelID: "222222222222222222"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGateFixture()
			tt.setupRepo(f.repo)

			info, err := f.svc.ExcludeChannel(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrType != nil {
					assert.ErrorIs(t, err, tt.wantErrType)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.req.ChannelID, info.ChannelID)
			assert.Equal(t, tt.req.ChannelName, info.ChannelName)
			assert.Equal(t, tt.req.RequestedBy, info.AddedBy)
			assert.False(t, info.AddedAt.IsZero())
		})
	}
}

func TestIncludeChannel(t *testing.T) {
	t.Run("removes excluded channel", func(t *testing.T) {
		f := newGateFixture()

		err := f.svc.IncludeChannel(context.Background(), "222222222222222222")

		assert.NoError(t, err)
		assert.Equal(t, []string{"RemoveExcludedChannel"}, f.repo.Trace())
	})

	t.Run("channel was not excluded", func(t *testing.T) {
		f := newGateFixture()
		f.repo.RemoveExcludedChannelFunc = func(ctx context.Context, db bun.IDB, channelID sharedtypes.ChannelID) error {
			return activitydb.ErrChannelNotExcluded
		}

		err := f.svc.IncludeChannel(context.Background(), "222222222222222222")

		assert.ErrorIs(t, err, activitydb.ErrChannelNotExcluded)
	})

	t.Run("missing channel ID", func(t *testing.T) {
		f := newGateFixture()

		err := f.svc.IncludeChannel(context.Background(), "")

		assert.ErrorIs(t, err, ErrInvalidChannelID)
	})
}

func TestListExcludedChannels(t *testing.T) {
	f := newGateFixture()
	f.repo.ListExcludedChannelsFunc = func(ctx context.Context, db bun.IDB) ([]activitydb.ExcludedChannel, error) {
		return []activitydb.ExcludedChannel{
			{ChannelID: "222222222222222201", ChannelName: "announcements", AddedBy: "444444444444444444", AddedAt: time.Now()},
			{ChannelID: "222222222222222202", ChannelName: "memes", AddedBy: "444444444444444444", AddedAt: time.Now()},
		}, nil
	}

	channels, err := f.svc.ListExcludedChannels(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, channels, 2) {
		assert.Equal(t, "announcements", channels[0].ChannelName)
		assert.Equal(t, "memes", channels[1].ChannelName)
	}
}

func TestGetRecentActivity(t *testing.T) {
	f := newGateFixture()
	var gotLimit int
	f.repo.GetRecentEventsFunc = func(ctx context.Context, db bun.IDB, limit int) ([]activitydb.AuditRow, error) {
		gotLimit = limit
		return []activitydb.AuditRow{
			{
				ActivityEvent: activitydb.ActivityEvent{
					ID:        42,
					UserID:    testUserID,
					RoundID:   7,
					ChannelID: testChannelID,
					Points:    1,
					CreatedAt: time.Now(),
				},
				Username: "maria",
			},
		}, nil
	}

	t.Run("returns joined audit rows", func(t *testing.T) {
		records, err := f.svc.GetRecentActivity(context.Background(), 10)

		assert.NoError(t, err)
		assert.Equal(t, 10, gotLimit)
		if assert.Len(t, records, 1) {
			assert.Equal(t, int64(42), records[0].ID)
			assert.Equal(t, "maria", records[0].Username)
		}
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		_, err := f.svc.GetRecentActivity(context.Background(), 0)

		assert.NoError(t, err)
		assert.Equal(t, defaultAuditLimit, gotLimit)
	})

	t.Run("oversized limit is clamped", func(t *testing.T) {
		_, err := f.svc.GetRecentActivity(context.Background(), 5000)

		assert.NoError(t, err)
		assert.Equal(t, maxAuditLimit, gotLimit)
	})
}
