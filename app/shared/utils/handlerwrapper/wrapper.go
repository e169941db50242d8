// Package handlerwrapper adapts typed, pure transformation handlers to
// watermill's message-based handler signature. A wrapped handler receives a
// decoded payload and returns Results; the wrapper turns each Result into an
// outgoing message whose destination topic rides in metadata.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/hablemos-club/league-bot/app/shared/observability/attr"
	"github.com/hablemos-club/league-bot/app/shared/utils"
)

type ctxKey string

// CtxKeyReplyTo carries a dynamic reply topic taken from message metadata.
const CtxKeyReplyTo ctxKey = "reply_to"

// Result is one message a handler wants published.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// ReturningMetrics records handler-level metrics.
type ReturningMetrics interface {
	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration)
}

// WrapTransformingTyped wraps a typed handler into a watermill HandlerFunc.
// The payload is decoded from JSON; decode failures are logged and dropped
// rather than retried, since a malformed payload never becomes valid.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	metrics ReturningMetrics,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := msg.Context()

		correlationID := middleware.MessageCorrelationID(msg)
		if correlationID == "" {
			correlationID = watermill.NewUUID()
			middleware.SetCorrelationID(correlationID, msg)
		}
		ctx = attr.WithCorrelationID(ctx, correlationID)

		if replyTo := msg.Metadata.Get("reply_to"); replyTo != "" {
			ctx = context.WithValue(ctx, CtxKeyReplyTo, replyTo)
		}

		if tracer != nil {
			var span trace.Span
			ctx, span = tracer.Start(ctx, handlerName)
			defer span.End()
		}

		if metrics != nil {
			metrics.RecordHandlerAttempt(ctx, handlerName)
			start := time.Now()
			defer func() {
				metrics.RecordHandlerDuration(ctx, handlerName, time.Since(start))
			}()
		}

		var payload T
		var decodeErr error
		if helpers != nil {
			decodeErr = helpers.UnmarshalPayload(msg, &payload)
		} else {
			decodeErr = json.Unmarshal(msg.Payload, &payload)
		}
		if decodeErr != nil {
			logger.ErrorContext(ctx, "Dropping message with undecodable payload",
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.Error(decodeErr),
			)
			if metrics != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
			}
			return nil, nil
		}

		handlerResults, err := handler(ctx, &payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler returned error",
				attr.String("handler", handlerName),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			if metrics != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
			}
			return nil, err
		}

		outgoing := make([]*message.Message, 0, len(handlerResults))
		for _, result := range handlerResults {
			out, buildErr := buildMessage(correlationID, handlerName, result)
			if buildErr != nil {
				logger.ErrorContext(ctx, "Failed to build result message",
					attr.String("handler", handlerName),
					attr.String("topic", result.Topic),
					attr.Error(buildErr),
				)
				if metrics != nil {
					metrics.RecordHandlerFailure(ctx, handlerName)
				}
				return nil, buildErr
			}
			outgoing = append(outgoing, out)
		}

		if metrics != nil {
			metrics.RecordHandlerSuccess(ctx, handlerName)
		}
		return outgoing, nil
	}
}

func buildMessage(correlationID, handlerName string, result Result) (*message.Message, error) {
	payloadBytes, err := json.Marshal(result.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result payload for topic %s: %w", result.Topic, err)
	}

	out := message.NewMessage(watermill.NewUUID(), payloadBytes)
	middleware.SetCorrelationID(correlationID, out)
	out.Metadata.Set(utils.TopicMetadataKey, result.Topic)
	out.Metadata.Set("caused_by", handlerName)
	for k, v := range result.Metadata {
		out.Metadata.Set(k, v)
	}
	return out, nil
}
