package roundservice

import (
	"fmt"
	"strings"

	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

var medals = [3]string{"🥇", "🥈", "🥉"}

// BuildAnnouncement renders the plain-text round summary: per-league podium
// with medal ranks, a "(resting)" tag on podium members sitting out the
// champion role, the merged champion list, and the next round's end time.
// next may be nil for previews. Pure formatting, deterministic.
func BuildAnnouncement(
	closed *roundtypes.RoundInfo,
	next *roundtypes.RoundInfo,
	standings roundtypes.LeagueStandings,
	champions roundtypes.LeagueStandings,
	cooldown map[sharedtypes.DiscordID]struct{},
) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏁 Round %d has ended!\n", closed.RoundNumber)

	for _, league := range leagues {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s:\n", leagueHeading(league))

		entries := standings[league]
		if len(entries) == 0 {
			b.WriteString("  No participants this round.\n")
			continue
		}

		podium := entries
		if len(podium) > len(medals) {
			podium = podium[:len(medals)]
		}
		for _, entry := range podium {
			fmt.Fprintf(&b, "  %s %s — %d pts (%s)", medals[entry.Rank-1], entry.Username, entry.TotalScore, formatActiveDays(entry.ActiveDays))
			if _, resting := cooldown[entry.UserID]; resting {
				b.WriteString(" (resting)")
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	picks := mergeChampions(champions)
	if len(picks) == 0 {
		b.WriteString("No champions this round.\n")
	} else {
		names := make([]string, 0, len(picks))
		for _, pick := range picks {
			names = append(names, pick.Username)
		}
		fmt.Fprintf(&b, "New champions: %s\n", strings.Join(names, ", "))
	}

	if next != nil {
		fmt.Fprintf(&b, "\nRound %d is live — ends %s. ¡A practicar!\n",
			next.RoundNumber, next.EndTime.UTC().Format("Monday 2 Jan, 15:04 MST"))
	}

	return b.String()
}

func leagueHeading(league sharedtypes.LeagueType) string {
	switch league {
	case sharedtypes.LeagueSpanish:
		return "Spanish league"
	case sharedtypes.LeagueEnglish:
		return "English league"
	}
	return string(league)
}

func formatActiveDays(days int) string {
	if days == 1 {
		return "1 active day"
	}
	return fmt.Sprintf("%d active days", days)
}
