//go:build integration

package userapplication_integration_tests

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	usermetrics "github.com/hablemos-club/league-bot/app/shared/observability/metrics/user"
	"github.com/hablemos-club/league-bot/integration_tests/testutils"

	userservice "github.com/hablemos-club/league-bot/app/modules/user/application"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

var testEnv *testutils.TestEnvironment

func TestMain(m *testing.M) {
	env, err := testutils.NewTestEnvironment(nil)
	if err != nil {
		log.Fatalf("Failed to setup test environment: %v", err)
	}
	testEnv = env

	exitCode := m.Run()

	env.Cleanup()
	os.Exit(exitCode)
}

// newUserService builds a user service against the real database.
func newUserService() userservice.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return userservice.NewUserService(
		userdb.NewRepository(testEnv.DB),
		logger,
		usermetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		testEnv.DB,
	)
}
