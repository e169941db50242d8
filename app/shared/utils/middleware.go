package utils

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// MiddlewareHelper builds the common router middleware used by every module.
type MiddlewareHelper struct{}

// NewMiddlewareHelper creates a MiddlewareHelper.
func NewMiddlewareHelper() *MiddlewareHelper {
	return &MiddlewareHelper{}
}

// CommonMetadataMiddleware stamps each message with the handling module and
// receipt time so downstream consumers can attribute results.
func (MiddlewareHelper) CommonMetadataMiddleware(module string) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			msg.Metadata.Set("module", module)
			msg.Metadata.Set("received_at", time.Now().UTC().Format(time.RFC3339))
			return h(msg)
		}
	}
}
