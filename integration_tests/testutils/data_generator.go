//go:build integration

package testutils

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	activitydb "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/repositories"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// TestDataGenerator produces league fixtures. Seed it for reproducible runs.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator with an optional fixed seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed used, for reproducing failures.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// Snowflake generates a Discord-shaped 18-digit ID.
func (g *TestDataGenerator) Snowflake() string {
	return g.faker.Numerify("1#################")
}

// MemberOpts tweaks a generated member. The zero value is an opted-in,
// unbanned Spanish learner.
type MemberOpts struct {
	UserID          sharedtypes.DiscordID
	Username        string
	OptedOut        bool
	Banned          bool
	LearningSpanish bool
	LearningEnglish bool
}

// NewMember builds a member row. Leaving both learning flags unset defaults
// to a Spanish learner so callers only specify what they care about.
func (g *TestDataGenerator) NewMember(opts MemberOpts) *userdb.Member {
	if opts.UserID == "" {
		opts.UserID = sharedtypes.DiscordID(g.Snowflake())
	}
	if opts.Username == "" {
		opts.Username = g.faker.Username()
	}
	if !opts.LearningSpanish && !opts.LearningEnglish {
		opts.LearningSpanish = true
	}
	return &userdb.Member{
		UserID:          opts.UserID,
		Username:        opts.Username,
		OptedIn:         !opts.OptedOut,
		Banned:          opts.Banned,
		LearningSpanish: opts.LearningSpanish,
		LearningEnglish: opts.LearningEnglish,
	}
}

// SeedMembers inserts the given members directly.
func SeedMembers(ctx context.Context, db bun.IDB, members ...*userdb.Member) error {
	for _, m := range members {
		if _, err := db.NewInsert().Model(m).Exec(ctx); err != nil {
			return fmt.Errorf("failed to seed member %s: %w", m.UserID, err)
		}
	}
	return nil
}

// SeedActiveRound inserts an ACTIVE round with the given number and window.
func SeedActiveRound(ctx context.Context, db bun.IDB, number sharedtypes.RoundNumber, start, end time.Time) (*rounddb.Round, error) {
	round := &rounddb.Round{
		RoundNumber: number,
		StartTime:   start,
		EndTime:     end,
		Status:      sharedtypes.RoundStatusActive,
	}
	if _, err := db.NewInsert().Model(round).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed round %d: %w", number, err)
	}
	return round, nil
}

// SeedCompletedRound inserts a COMPLETED round with the given number.
func SeedCompletedRound(ctx context.Context, db bun.IDB, number sharedtypes.RoundNumber, start, end time.Time) (*rounddb.Round, error) {
	round := &rounddb.Round{
		RoundNumber: number,
		StartTime:   start,
		EndTime:     end,
		Status:      sharedtypes.RoundStatusCompleted,
	}
	if _, err := db.NewInsert().Model(round).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed completed round %d: %w", number, err)
	}
	return round, nil
}

// SeedActivity inserts one activity event with an explicit timestamp. Active
// days are counted over distinct UTC dates, so tests vary createdAt by whole
// days.
func SeedActivity(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, roundID sharedtypes.RoundID, points int, createdAt time.Time) error {
	event := &activitydb.ActivityEvent{
		UserID:    userID,
		RoundID:   roundID,
		ChannelID: "100000000000000001",
		Points:    points,
		CreatedAt: createdAt,
	}
	if _, err := db.NewInsert().Model(event).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed activity for %s: %w", userID, err)
	}
	return nil
}

// SpanishSentence returns text the stub detector classifies as Spanish.
func (g *TestDataGenerator) SpanishSentence() string {
	return "hola, hoy practiqué " + g.faker.Word() + " durante la tarde"
}

// EnglishSentence returns text the stub detector classifies as English.
func (g *TestDataGenerator) EnglishSentence() string {
	return "hello, today I practiced " + g.faker.Word() + " in the evening"
}

// UndetectableSentence returns text the stub detector cannot classify.
func (g *TestDataGenerator) UndetectableSentence() string {
	return "¯\\_(ツ)_/¯ 12345"
}
