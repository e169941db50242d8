package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// ErrNotRanked is returned when a member does not appear on a board.
var ErrNotRanked = errors.New("member is not on this board")

// scoreExpr computes total_score inside SQL so ordering, ranking, and the
// returned values can never disagree. Active days are counted over UTC
// calendar dates regardless of the session time zone.
const scoreExpr = "COALESCE(SUM(ae.points), 0) + COUNT(DISTINCT (ae.created_at AT TIME ZONE 'UTC')::date) * ?"

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new standings repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// boardPredicate narrows a board to members with the matching learning flag.
// The combined board keeps only the shared opt-in/ban filter.
func boardPredicate(board sharedtypes.BoardType) string {
	switch board {
	case sharedtypes.BoardSpanish:
		return "AND u.learning_spanish = TRUE"
	case sharedtypes.BoardEnglish:
		return "AND u.learning_english = TRUE"
	}
	return ""
}

// GetBoard computes one board's standings for a round.
func (r *Impl) GetBoard(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, bonus, limit int) ([]BoardRow, error) {
	db = r.resolveDB(db)
	var rows []BoardRow
	err := db.NewRaw(`
		SELECT
			u.user_id,
			u.username,
			`+scoreExpr+` AS total_score,
			COUNT(DISTINCT (ae.created_at AT TIME ZONE 'UTC')::date) AS active_days,
			RANK() OVER (ORDER BY `+scoreExpr+` DESC) AS rank
		FROM users AS u
		LEFT JOIN activity_events AS ae ON ae.user_id = u.user_id AND ae.round_id = ?
		WHERE u.opted_in = TRUE AND u.banned = FALSE `+boardPredicate(board)+`
		GROUP BY u.user_id, u.username
		ORDER BY rank ASC, u.username ASC
		LIMIT ?
	`, bonus, bonus, roundID, limit).Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s board: %w", board, err)
	}
	return rows, nil
}

// GetUserBoardRank returns one member's rank on a board.
func (r *Impl) GetUserBoardRank(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, bonus int, userID sharedtypes.DiscordID) (int, error) {
	db = r.resolveDB(db)
	var rank int
	err := db.NewRaw(`
		SELECT ranked.rank FROM (
			SELECT
				u.user_id,
				RANK() OVER (ORDER BY `+scoreExpr+` DESC) AS rank
			FROM users AS u
			LEFT JOIN activity_events AS ae ON ae.user_id = u.user_id AND ae.round_id = ?
			WHERE u.opted_in = TRUE AND u.banned = FALSE `+boardPredicate(board)+`
			GROUP BY u.user_id, u.username
		) AS ranked
		WHERE ranked.user_id = ?
	`, bonus, roundID, userID).Scan(ctx, &rank)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotRanked
		}
		return 0, fmt.Errorf("failed to compute %s board rank: %w", board, err)
	}
	return rank, nil
}

// GetMemberRoundStats aggregates one member's points and active days for a round.
func (r *Impl) GetMemberRoundStats(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, bonus int, userID sharedtypes.DiscordID) (*MemberRoundStats, error) {
	db = r.resolveDB(db)
	stats := new(MemberRoundStats)
	err := db.NewRaw(`
		SELECT
			COALESCE(SUM(ae.points), 0) AS points_sum,
			COUNT(DISTINCT (ae.created_at AT TIME ZONE 'UTC')::date) AS active_days,
			`+scoreExpr+` AS total_score
		FROM activity_events AS ae
		WHERE ae.user_id = ? AND ae.round_id = ?
	`, bonus, userID, roundID).Scan(ctx, stats)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate member round stats: %w", err)
	}
	return stats, nil
}

// GetTotalsCounts gathers the admin overview counters.
func (r *Impl) GetTotalsCounts(ctx context.Context, db bun.IDB, eventsSince time.Time) (*TotalsCounts, error) {
	db = r.resolveDB(db)
	counts := new(TotalsCounts)
	err := db.NewRaw(`
		SELECT
			(SELECT COUNT(*) FROM users) AS members,
			(SELECT COUNT(*) FROM users WHERE opted_in = TRUE) AS opted_in,
			(SELECT COUNT(*) FROM users WHERE banned = TRUE) AS banned,
			(SELECT COUNT(*) FROM excluded_channels) AS excluded_channels,
			(SELECT COUNT(*) FROM activity_events WHERE created_at >= ?) AS events_today
	`, eventsSince).Scan(ctx, counts)
	if err != nil {
		return nil, fmt.Errorf("failed to gather league totals: %w", err)
	}
	return counts, nil
}
