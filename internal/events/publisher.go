package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/shareit-platform/service-booking/internal/platform/kafka"
)

// NoopPublisher drops events. It stands in for the Kafka producer when
// messaging is disabled.
type NoopPublisher struct {
	logger *zap.Logger
}

// NewNoopPublisher creates a new NoopPublisher.
func NewNoopPublisher(logger *zap.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

// PublishEvent logs the event at debug level and discards it.
func (p *NoopPublisher) PublishEvent(_ context.Context, topic, key string, event kafka.CloudEvent) error {
	p.logger.Debug("kafka disabled, dropping event",
		zap.String("topic", topic),
		zap.String("key", key),
		zap.String("event_type", event.Type),
	)
	return nil
}
