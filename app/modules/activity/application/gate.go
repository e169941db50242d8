package activityservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/hablemos-club/league-bot/app/shared/observability/attr"
	activitytypes "github.com/hablemos-club/league-bot/app/shared/types/activity"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// evaluate runs the eligibility checks in order, short-circuiting on the
// first failure. It never spends the cooldown token; ProcessMessage spends it
// once the whole message is accepted, so dry runs stay free of side effects.
func (s *ActivityService) evaluate(ctx context.Context, db bun.IDB, msg activitytypes.InboundMessage) (activitytypes.GateDecision, error) {
	if msg.IsBot {
		return reject(activitytypes.RejectBotAuthor), nil
	}

	if msg.GuildID != s.config.GuildID {
		return reject(activitytypes.RejectWrongGuild), nil
	}

	member, err := s.members.GetByUserID(ctx, db, msg.UserID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return reject(activitytypes.RejectNotOptedIn), nil
		}
		return activitytypes.GateDecision{}, fmt.Errorf("failed to load member: %w", err)
	}
	if !member.OptedIn {
		return reject(activitytypes.RejectNotOptedIn), nil
	}
	if member.Banned {
		return reject(activitytypes.RejectBanned), nil
	}

	excluded, err := s.repo.IsChannelExcluded(ctx, db, msg.ChannelID)
	if err != nil {
		return activitytypes.GateDecision{}, fmt.Errorf("failed to check channel exclusion: %w", err)
	}
	if excluded {
		return reject(activitytypes.RejectExcludedChannel), nil
	}

	if !s.cooldown.Ready(msg.UserID, msg.ChannelID) {
		return reject(activitytypes.RejectCooldown), nil
	}

	counted, err := s.repo.CountEventsSince(ctx, db, msg.UserID, startOfDayUTC(time.Now()))
	if err != nil {
		return activitytypes.GateDecision{}, fmt.Errorf("failed to count daily events: %w", err)
	}
	if counted >= s.config.DailyCap {
		return reject(activitytypes.RejectDailyCap), nil
	}

	// Detection failures count as "no language detected", never as an
	// infrastructure error: the message is silently dropped either way.
	language, err := s.detector.Detect(ctx, msg.Content)
	if err != nil {
		s.logger.WarnContext(ctx, "Language detection failed, treating as undetermined",
			attr.ExtractCorrelationID(ctx),
			attr.String("user_id", string(msg.UserID)),
			attr.Error(err),
		)
		return reject(activitytypes.RejectLanguage), nil
	}
	if language == "" || !learns(member, language) {
		return reject(activitytypes.RejectLanguage), nil
	}

	return activitytypes.GateDecision{Accepted: true, Language: language}, nil
}

func reject(reason activitytypes.RejectReason) activitytypes.GateDecision {
	return activitytypes.GateDecision{Accepted: false, Reason: reason}
}

// learns reports whether the member's learning flags cover the language.
func learns(member *userdb.Member, language sharedtypes.LanguageCode) bool {
	switch language {
	case sharedtypes.LangSpanish:
		return member.LearningSpanish
	case sharedtypes.LangEnglish:
		return member.LearningEnglish
	}
	return false
}

// startOfDayUTC returns UTC midnight of the day containing t. The daily cap
// counts events per UTC calendar day.
func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
