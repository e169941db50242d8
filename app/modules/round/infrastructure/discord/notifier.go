// Package rounddiscord publishes the gateway-bound side effects of a round
// transition. The backend never talks to the Discord API directly; the
// gateway process consumes these topics and performs the calls.
package rounddiscord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hablemos-club/league-bot/app/eventbus"
	discordevents "github.com/hablemos-club/league-bot/app/shared/events/discord"
	"github.com/hablemos-club/league-bot/app/shared/observability/attr"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils"

	roundservice "github.com/hablemos-club/league-bot/app/modules/round/application"
)

// Notifier emits role and announcement requests onto the event bus.
type Notifier struct {
	eventBus  eventbus.EventBus
	helpers   utils.Helpers
	logger    *slog.Logger
	roleID    string
	channelID sharedtypes.ChannelID
}

// NewNotifier creates a Notifier bound to the champion role and the league
// announcement channel.
func NewNotifier(
	eventBus eventbus.EventBus,
	helpers utils.Helpers,
	logger *slog.Logger,
	roleID string,
	channelID sharedtypes.ChannelID,
) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		eventBus:  eventBus,
		helpers:   helpers,
		logger:    logger,
		roleID:    roleID,
		channelID: channelID,
	}
}

func (n *Notifier) GrantChampionRole(ctx context.Context, userID sharedtypes.DiscordID) error {
	n.logger.DebugContext(ctx, "Requesting champion role grant",
		attr.ExtractCorrelationID(ctx),
		attr.String("user_id", string(userID)),
	)
	return n.publish(discordevents.RoleGrantRequestedV1, discordevents.RoleGrantRequestedPayloadV1{
		UserID: userID,
		RoleID: n.roleID,
		Reason: "round champion",
	})
}

func (n *Notifier) RevokeChampionRole(ctx context.Context, userID sharedtypes.DiscordID) error {
	n.logger.DebugContext(ctx, "Requesting champion role revoke",
		attr.ExtractCorrelationID(ctx),
		attr.String("user_id", string(userID)),
	)
	return n.publish(discordevents.RoleRevokeRequestedV1, discordevents.RoleRevokeRequestedPayloadV1{
		UserID: userID,
		RoleID: n.roleID,
		Reason: "champion cooldown",
	})
}

func (n *Notifier) Announce(ctx context.Context, content string) error {
	n.logger.DebugContext(ctx, "Requesting round announcement",
		attr.ExtractCorrelationID(ctx),
	)
	return n.publish(discordevents.AnnouncementRequestedV1, discordevents.AnnouncementRequestedPayloadV1{
		ChannelID: n.channelID,
		Content:   content,
	})
}

func (n *Notifier) publish(topic string, payload any) error {
	msg, err := n.helpers.CreateNewMessage(payload, topic)
	if err != nil {
		return fmt.Errorf("failed to build %s message: %w", topic, err)
	}
	if err := n.eventBus.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	return nil
}

var _ roundservice.RoleNotifier = (*Notifier)(nil)
