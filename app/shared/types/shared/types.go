package sharedtypes

// DiscordID is a Discord user snowflake.
type DiscordID string

// ChannelID is a Discord channel snowflake.
type ChannelID string

// GuildID is a Discord guild snowflake.
type GuildID string

// MessageID is a Discord message snowflake.
type MessageID string

// RoundID identifies a scoring round row.
type RoundID int64

// RoundNumber is the monotonically increasing public round counter.
type RoundNumber int64

// RoundStatus is the lifecycle state of a round.
type RoundStatus string

const (
	RoundStatusActive    RoundStatus = "ACTIVE"
	RoundStatusCompleted RoundStatus = "COMPLETED"
)

// BoardType selects a leaderboard partition.
type BoardType string

const (
	BoardSpanish  BoardType = "spanish"
	BoardEnglish  BoardType = "english"
	BoardCombined BoardType = "combined"
)

// Valid reports whether b is a known board type.
func (b BoardType) Valid() bool {
	switch b {
	case BoardSpanish, BoardEnglish, BoardCombined:
		return true
	}
	return false
}

// LeagueType is a language league; winners are snapshotted per league.
type LeagueType string

const (
	LeagueSpanish LeagueType = "spanish"
	LeagueEnglish LeagueType = "english"
)

// Board returns the leaderboard partition backing this league.
func (l LeagueType) Board() BoardType {
	return BoardType(l)
}

// LanguageCode is an ISO 639-1 code emitted by the external detector.
type LanguageCode string

const (
	LangSpanish LanguageCode = "es"
	LangEnglish LanguageCode = "en"
)
