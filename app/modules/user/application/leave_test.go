package userservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"

	usermetrics "github.com/hablemos-club/league-bot/app/shared/observability/metrics/user"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

func TestLeave(t *testing.T) {
	member := &userdb.Member{
		UserID:          "222222222222222222",
		Username:        "diego",
		OptedIn:         true,
		LearningEnglish: true,
	}

	tests := []struct {
		name        string
		setupRepo   func(*FakeMemberRepo)
		userID      sharedtypes.DiscordID
		wantErr     bool
		wantErrType error
		wantTrace   []string
	}{
		{
			name: "happy path - member opted out",
			setupRepo: func(f *FakeMemberRepo) {
				f.GetByUserIDFunc = func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error) {
					m := *member
					return &m, nil
				}
				f.SetOptedInFunc = func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, optedIn bool) error {
					assert.False(t, optedIn)
					return nil
				}
			},
			userID:    member.UserID,
			wantTrace: []string{"GetByUserID", "SetOptedIn"},
		},
		{
			name: "member not found",
			setupRepo: func(f *FakeMemberRepo) {
				f.GetByUserIDFunc = func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error) {
					return nil, userdb.ErrNotFound
				}
			},
			userID:      member.UserID,
			wantErr:     true,
			wantErrType: userdb.ErrNotFound,
		},
		{
			name: "database error",
			setupRepo: func(f *FakeMemberRepo) {
				f.GetByUserIDFunc = func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error) {
					m := *member
					return &m, nil
				}
				f.SetOptedInFunc = func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, optedIn bool) error {
					return errors.New("database connection failed")
				}
			},
			userID:  member.UserID,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := NewFakeMemberRepo()
			tt.setupRepo(fakeRepo)

			svc := NewUserService(
				fakeRepo,
				slog.Default(),
				usermetrics.NewNoop(),
				nil,
				nil,
			)

			info, err := svc.Leave(context.Background(), tt.userID)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrType != nil {
					assert.ErrorIs(t, err, tt.wantErrType)
				}
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, info)
			assert.False(t, info.OptedIn)
			if tt.wantTrace != nil {
				assert.Equal(t, tt.wantTrace, fakeRepo.Trace())
			}
		})
	}
}

func TestGetMember(t *testing.T) {
	member := &userdb.Member{
		UserID:   "333333333333333333",
		Username: "sofia",
		OptedIn:  true,
	}

	t.Run("happy path", func(t *testing.T) {
		fakeRepo := NewFakeMemberRepo()
		fakeRepo.GetByUserIDFunc = func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error) {
			return member, nil
		}

		svc := NewUserService(fakeRepo, slog.Default(), usermetrics.NewNoop(), nil, nil)

		info, err := svc.GetMember(context.Background(), member.UserID)
		assert.NoError(t, err)
		assert.Equal(t, "sofia", info.Username)
	})

	t.Run("not found", func(t *testing.T) {
		fakeRepo := NewFakeMemberRepo()

		svc := NewUserService(fakeRepo, slog.Default(), usermetrics.NewNoop(), nil, nil)

		_, err := svc.GetMember(context.Background(), "999999999999999999")
		assert.ErrorIs(t, err, userdb.ErrNotFound)
	})
}
