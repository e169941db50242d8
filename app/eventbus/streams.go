package eventbus

import (
	"context"
	"fmt"
)

// Stream names and the subject spaces they capture. Every league topic is
// "league.<module>.<thing>.<verb>.v1" and every gateway-bound command is
// "discord.<thing>.<verb>.v1", so two streams cover the whole topology.
const (
	LeagueStream  = "league"
	DiscordStream = "discord"
)

var streamSubjects = map[string][]string{
	LeagueStream:  {"league.>"},
	DiscordStream: {"discord.>"},
}

// InitializeStreams creates (or reconciles) the JetStream streams during
// application startup so module routers never race stream creation.
func InitializeStreams(ctx context.Context, eb EventBus) error {
	for name, subjects := range streamSubjects {
		if err := eb.CreateStream(ctx, name, subjects...); err != nil {
			return fmt.Errorf("failed to initialize stream %s: %w", name, err)
		}
	}
	return nil
}
