package userdb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// Repository defines the contract for member persistence.
type Repository interface {
	// GetByUserID retrieves a member by Discord ID.
	GetByUserID(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*Member, error)

	// Upsert creates or updates a member keyed by Discord ID.
	Upsert(ctx context.Context, db bun.IDB, member *Member) error

	// SetOptedIn flips the opt-in flag for an existing member.
	SetOptedIn(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, optedIn bool) error

	// SetBanned flips the ban flag for an existing member.
	SetBanned(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, banned bool) error
}
