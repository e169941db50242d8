package rounddb

import (
	"time"

	"github.com/uptrace/bun"

	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// Round represents a scoring round row. At most one row is ACTIVE at a time;
// a partial unique index on status enforces that at the database level.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`

	ID          sharedtypes.RoundID     `bun:"id,pk,autoincrement" json:"id"`
	RoundNumber sharedtypes.RoundNumber `bun:"round_number,notnull,unique" json:"round_number"`
	StartTime   time.Time               `bun:"start_time,notnull" json:"start_time"`
	EndTime     time.Time               `bun:"end_time,notnull" json:"end_time"`
	Status      sharedtypes.RoundStatus `bun:"status,notnull,default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time               `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time               `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// ToInfo converts the row to the service-level view.
func (r *Round) ToInfo() *roundtypes.RoundInfo {
	return &roundtypes.RoundInfo{
		ID:          r.ID,
		RoundNumber: r.RoundNumber,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Status:      r.Status,
	}
}

// RoundWinner is a podium snapshot taken when a round closes. Standings are
// recomputed from activity_events at close time; this table freezes them.
type RoundWinner struct {
	bun.BaseModel `bun:"table:round_winners,alias:rw"`

	ID          int64                   `bun:"id,pk,autoincrement" json:"id"`
	RoundID     sharedtypes.RoundID     `bun:"round_id,notnull" json:"round_id"`
	RoundNumber sharedtypes.RoundNumber `bun:"round_number,notnull" json:"round_number"`
	UserID      sharedtypes.DiscordID   `bun:"user_id,notnull" json:"user_id"`
	Username    string                  `bun:"username,notnull" json:"username"`
	LeagueType  sharedtypes.LeagueType  `bun:"league_type,notnull" json:"league_type"`
	Rank        int                     `bun:"rank,notnull" json:"rank"`
	TotalScore  int                     `bun:"total_score,notnull" json:"total_score"`
	ActiveDays  int                     `bun:"active_days,notnull" json:"active_days"`
	CreatedAt   time.Time               `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// ToRecord converts the row to the service-level view.
func (w *RoundWinner) ToRecord() roundtypes.WinnerRecord {
	return roundtypes.WinnerRecord{
		RoundNumber: w.RoundNumber,
		UserID:      w.UserID,
		Username:    w.Username,
		LeagueType:  w.LeagueType,
		Rank:        w.Rank,
		TotalScore:  w.TotalScore,
		ActiveDays:  w.ActiveDays,
	}
}

// RoleRecipient records a member who held the champion role for a round.
// The previous round's recipients form the rotation cooldown set.
type RoleRecipient struct {
	bun.BaseModel `bun:"table:role_recipients,alias:rr"`

	ID         int64                  `bun:"id,pk,autoincrement" json:"id"`
	RoundID    sharedtypes.RoundID    `bun:"round_id,notnull" json:"round_id"`
	UserID     sharedtypes.DiscordID  `bun:"user_id,notnull" json:"user_id"`
	LeagueType sharedtypes.LeagueType `bun:"league_type,notnull" json:"league_type"`
	GrantedAt  time.Time              `bun:"granted_at,nullzero,notnull,default:current_timestamp" json:"granted_at"`
}
