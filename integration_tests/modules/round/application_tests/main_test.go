//go:build integration

package roundapplication_integration_tests

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	roundmetrics "github.com/hablemos-club/league-bot/app/shared/observability/metrics/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/integration_tests/testutils"

	leaderboarddb "github.com/hablemos-club/league-bot/app/modules/leaderboard/infrastructure/repositories"
	roundservice "github.com/hablemos-club/league-bot/app/modules/round/application"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
	roundutil "github.com/hablemos-club/league-bot/app/modules/round/utils"
)

var testEnv *testutils.TestEnvironment

func TestMain(m *testing.M) {
	env, err := testutils.NewTestEnvironment(nil)
	if err != nil {
		log.Fatalf("failed to set up test environment: %v", err)
	}
	testEnv = env

	exitCode := m.Run()
	env.Cleanup()
	os.Exit(exitCode)
}

// recordingNotifier captures gateway side effects so tests can assert the
// role rotation without a Discord connection.
type recordingNotifier struct {
	mu        sync.Mutex
	granted   []sharedtypes.DiscordID
	revoked   []sharedtypes.DiscordID
	announced []string
	grantErr  error
}

func (n *recordingNotifier) GrantChampionRole(_ context.Context, userID sharedtypes.DiscordID) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.grantErr != nil {
		return n.grantErr
	}
	n.granted = append(n.granted, userID)
	return nil
}

func (n *recordingNotifier) RevokeChampionRole(_ context.Context, userID sharedtypes.DiscordID) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.revoked = append(n.revoked, userID)
	return nil
}

func (n *recordingNotifier) Announce(_ context.Context, content string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.announced = append(n.announced, content)
	return nil
}

func (n *recordingNotifier) snapshot() (granted, revoked []sharedtypes.DiscordID, announced []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sharedtypes.DiscordID(nil), n.granted...),
		append([]sharedtypes.DiscordID(nil), n.revoked...),
		append([]string(nil), n.announced...)
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate() { c.calls++ }

// newRoundService wires the service against the live database. The standings
// source is the real leaderboard repository, so close and preview read the
// same SQL production does.
func newRoundService(clock roundutil.Clock, cfg roundservice.RoundConfig) (*roundservice.RoundService, *recordingNotifier, *countingInvalidator) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := &recordingNotifier{}
	invalidator := &countingInvalidator{}
	svc := roundservice.NewRoundService(
		rounddb.NewRepository(testEnv.DB),
		leaderboarddb.NewRepository(testEnv.DB),
		notifier,
		invalidator,
		clock,
		cfg,
		logger,
		roundmetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		testEnv.DB,
	)
	return svc, notifier, invalidator
}

func defaultConfig() roundservice.RoundConfig {
	return roundservice.RoundConfig{ChampionCount: 3, ActiveDayBonus: 5}
}

// clockAt returns a FakeClock pinned to the given instant.
func clockAt(at time.Time) *roundutil.FakeClock {
	return &roundutil.FakeClock{
		NowFn:    func() time.Time { return at },
		NowUTCFn: func() time.Time { return at.UTC() },
	}
}
