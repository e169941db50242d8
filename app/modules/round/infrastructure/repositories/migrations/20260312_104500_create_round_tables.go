package roundmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	// Ensure migration caller discovery is enabled so this migration gets a stable ID
	// even if init file ordering is not deterministic.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating rounds, round_winners, and role_recipients tables...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS rounds (
				id BIGSERIAL PRIMARY KEY,
				round_number BIGINT NOT NULL UNIQUE,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ NOT NULL,
				status TEXT NOT NULL DEFAULT 'ACTIVE',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE UNIQUE INDEX IF NOT EXISTS idx_rounds_single_active ON rounds(status) WHERE status = 'ACTIVE';
		`)
		if err != nil {
			return fmt.Errorf("failed to create rounds table: %w", err)
		}

		_, err = db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS round_winners (
				id BIGSERIAL PRIMARY KEY,
				round_id BIGINT NOT NULL REFERENCES rounds(id),
				round_number BIGINT NOT NULL,
				user_id TEXT NOT NULL,
				username TEXT NOT NULL,
				league_type TEXT NOT NULL,
				rank INT NOT NULL,
				total_score INT NOT NULL,
				active_days INT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_round_winners_round ON round_winners(round_id);
		`)
		if err != nil {
			return fmt.Errorf("failed to create round_winners table: %w", err)
		}

		_, err = db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS role_recipients (
				id BIGSERIAL PRIMARY KEY,
				round_id BIGINT NOT NULL REFERENCES rounds(id),
				user_id TEXT NOT NULL,
				league_type TEXT NOT NULL,
				granted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (round_id, user_id)
			);
		`)
		if err != nil {
			return fmt.Errorf("failed to create role_recipients table: %w", err)
		}

		fmt.Println("Round tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping round tables...")

		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS role_recipients;
			DROP TABLE IF EXISTS round_winners;
			DROP TABLE IF EXISTS rounds;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop round tables: %w", err)
		}

		fmt.Println("Round tables dropped successfully!")
		return nil
	})
}
