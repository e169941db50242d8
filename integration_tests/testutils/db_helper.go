//go:build integration

package testutils

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	activitymigrations "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/repositories/migrations"
	roundmigrations "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories/migrations"
	usermigrations "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories/migrations"
)

// RunMigrations applies the River queue schema followed by every module's
// migrations, in the same order the bun CLI uses.
func RunMigrations(ctx context.Context, db *bun.DB, pgConnStr string) error {
	if err := runRiverMigrations(ctx, pgConnStr); err != nil {
		return fmt.Errorf("failed to run river migrations: %w", err)
	}

	orderedModules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"user", usermigrations.Migrations},
		{"activity", activitymigrations.Migrations},
		{"round", roundmigrations.Migrations},
	}

	for _, mod := range orderedModules {
		migrator := migrate.NewMigrator(db, mod.migrations)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init %s migrations: %w", mod.name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.name, err)
		}
	}
	return nil
}

// runRiverMigrations brings up the river_job tables the round close queue
// needs.
func runRiverMigrations(ctx context.Context, pgConnStr string) error {
	poolConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		return fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create river migrator: %w", err)
	}
	_, err = migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{})
	return err
}

// leagueTables lists every application table in FK-safe truncation order.
var leagueTables = []string{
	"role_recipients",
	"round_winners",
	"activity_events",
	"excluded_channels",
	"rounds",
	"users",
}

// CleanLeagueTables truncates all application tables so each test starts from
// an empty league.
func CleanLeagueTables(ctx context.Context, db *bun.DB) error {
	for _, table := range leagueTables {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// CleanRiverJobs deletes all queued jobs between tests.
func CleanRiverJobs(ctx context.Context, db *bun.DB) error {
	_, err := db.ExecContext(ctx, "DELETE FROM river_job")
	return err
}
