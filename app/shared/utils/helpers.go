package utils

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// TopicMetadataKey names the metadata entry carrying a message's destination
// topic. The event bus resolves it when the router's publish topic is empty.
const TopicMetadataKey = "topic"

// Helpers provides payload marshaling shared by handlers and publishers.
type Helpers interface {
	// UnmarshalPayload decodes a message payload into target.
	UnmarshalPayload(msg *message.Message, target any) error

	// CreateResultMessage builds a new message carrying payload, destined for
	// topic, preserving the original message's correlation metadata.
	CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error)

	// CreateNewMessage builds a message with fresh correlation metadata, for
	// publishes that do not originate from an inbound message.
	CreateNewMessage(payload any, topic string) (*message.Message, error)
}

type helpers struct {
	logger *slog.Logger
}

// NewHelpers creates the default Helpers implementation.
func NewHelpers(logger *slog.Logger) Helpers {
	if logger == nil {
		logger = slog.Default()
	}
	return &helpers{logger: logger}
}

func (h *helpers) UnmarshalPayload(msg *message.Message, target any) error {
	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}

func (h *helpers) CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payloadBytes)
	msg.Metadata.Set(TopicMetadataKey, topic)

	if original != nil {
		if correlationID := middleware.MessageCorrelationID(original); correlationID != "" {
			middleware.SetCorrelationID(correlationID, msg)
		}
		if causedBy := original.Metadata.Get("handler_name"); causedBy != "" {
			msg.Metadata.Set("caused_by", causedBy)
		}
	}

	return msg, nil
}

func (h *helpers) CreateNewMessage(payload any, topic string) (*message.Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payloadBytes)
	msg.Metadata.Set(TopicMetadataKey, topic)
	middleware.SetCorrelationID(watermill.NewUUID(), msg)

	return msg, nil
}
