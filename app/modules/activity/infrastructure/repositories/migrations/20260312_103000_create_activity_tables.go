package activitymigrations

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
		fmt.Println("Creating activity_events and excluded_channels tables...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS activity_events (
				id BIGSERIAL PRIMARY KEY,
				user_id TEXT NOT NULL,
				round_id BIGINT NOT NULL,
				channel_id TEXT NOT NULL,
				source_event_id TEXT,
				points INT NOT NULL DEFAULT 1,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_activity_events_round_user ON activity_events(round_id, user_id);
			CREATE INDEX IF NOT EXISTS idx_activity_events_user_created ON activity_events(user_id, created_at);
		`)
		if err != nil {
			return fmt.Errorf("failed to create activity_events table: %w", err)
		}

		_, err = db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS excluded_channels (
				channel_id TEXT PRIMARY KEY,
				channel_name TEXT NOT NULL,
				added_by TEXT NOT NULL,
				added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
		`)
		if err != nil {
			return fmt.Errorf("failed to create excluded_channels table: %w", err)
		}

		fmt.Println("Activity tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping activity tables...")

		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS excluded_channels;
			DROP TABLE IF EXISTS activity_events;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop activity tables: %w", err)
		}

		fmt.Println("Activity tables dropped successfully!")
		return nil
	})
}
