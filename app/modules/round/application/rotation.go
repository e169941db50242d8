package roundservice

import (
	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// EligibleChampions walks ranked standings in order and collects up to count
// entries whose users are not in the cooldown set, preserving the ranking
// order. Pure function, no I/O.
func EligibleChampions(ranked []leaderboardtypes.RankedEntry, cooldown map[sharedtypes.DiscordID]struct{}, count int) []leaderboardtypes.RankedEntry {
	if count <= 0 {
		return nil
	}

	eligible := make([]leaderboardtypes.RankedEntry, 0, count)
	for _, entry := range ranked {
		if len(eligible) == count {
			break
		}
		if _, resting := cooldown[entry.UserID]; resting {
			continue
		}
		eligible = append(eligible, entry)
	}
	return eligible
}

// mergeChampions flattens per-league champions into one recipient list in
// league order, keeping the first occurrence of each user.
func mergeChampions(champions roundtypes.LeagueStandings) []championPick {
	seen := make(map[sharedtypes.DiscordID]struct{})
	var merged []championPick
	for _, league := range leagues {
		for _, entry := range champions[league] {
			if _, dup := seen[entry.UserID]; dup {
				continue
			}
			seen[entry.UserID] = struct{}{}
			merged = append(merged, championPick{
				UserID:   entry.UserID,
				Username: entry.Username,
				League:   league,
			})
		}
	}
	return merged
}

// championPick is one de-duplicated role recipient with the league that
// earned the pick.
type championPick struct {
	UserID   sharedtypes.DiscordID
	Username string
	League   sharedtypes.LeagueType
}
