package usertypes

import (
	"time"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// MemberInfo is the service-level view of a league member.
type MemberInfo struct {
	UserID          sharedtypes.DiscordID `json:"user_id"`
	Username        string                `json:"username"`
	OptedIn         bool                  `json:"opted_in"`
	Banned          bool                  `json:"banned"`
	LearningSpanish bool                  `json:"learning_spanish"`
	LearningEnglish bool                  `json:"learning_english"`
	JoinedAt        time.Time             `json:"joined_at"`
}

// Learning reports whether the member studies the given language.
func (m *MemberInfo) Learning(code sharedtypes.LanguageCode) bool {
	switch code {
	case sharedtypes.LangSpanish:
		return m.LearningSpanish
	case sharedtypes.LangEnglish:
		return m.LearningEnglish
	}
	return false
}
