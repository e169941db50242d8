package userdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	usertypes "github.com/hablemos-club/league-bot/app/shared/types/user"
)

// Member represents a league member row. Rows are never deleted; leaving the
// league flips opted_in so scoring history stays attributable.
type Member struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID          sharedtypes.DiscordID `bun:"user_id,pk" json:"user_id"`
	Username        string                `bun:"username,notnull" json:"username"`
	OptedIn         bool                  `bun:"opted_in,notnull,default:true" json:"opted_in"`
	Banned          bool                  `bun:"banned,notnull,default:false" json:"banned"`
	LearningSpanish bool                  `bun:"learning_spanish,notnull,default:false" json:"learning_spanish"`
	LearningEnglish bool                  `bun:"learning_english,notnull,default:false" json:"learning_english"`
	JoinedAt        time.Time             `bun:"joined_at,nullzero,notnull,default:current_timestamp" json:"joined_at"`
	UpdatedAt       time.Time             `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// ToInfo converts the row to the service-level view.
func (m *Member) ToInfo() *usertypes.MemberInfo {
	return &usertypes.MemberInfo{
		UserID:          m.UserID,
		Username:        m.Username,
		OptedIn:         m.OptedIn,
		Banned:          m.Banned,
		LearningSpanish: m.LearningSpanish,
		LearningEnglish: m.LearningEnglish,
		JoinedAt:        m.JoinedAt,
	}
}
