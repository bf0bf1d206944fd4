package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shareit-platform/service-booking/internal/events/schema"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
	"github.com/shareit-platform/service-booking/internal/platform/kafka"
)

// UserReplica applies identity service changes to the local user table.
type UserReplica interface {
	ApplyUserChanged(ctx context.Context, evt schema.UserEvent) error
	ApplyUserDeleted(ctx context.Context, evt schema.UserEvent) error
}

// UserEventConsumer listens to user events and keeps the replica current.
type UserEventConsumer struct {
	consumer *kafka.Consumer
	replica  UserReplica
	logger   *zap.Logger
}

// NewUserEventConsumer creates a new UserEventConsumer.
func NewUserEventConsumer(
	brokers []string,
	groupID string,
	replica UserReplica,
	logger *zap.Logger,
) *UserEventConsumer {
	return &UserEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, schema.TopicUserEvents, logger),
		replica:  replica,
		logger:   logger,
	}
}

// Start begins consuming user events. This blocks until the context is cancelled.
func (c *UserEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *UserEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *UserEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from user topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	var apply func(context.Context, schema.UserEvent) error
	switch cloudEvent.Type {
	case schema.UserRegistered, schema.UserUpdated:
		apply = c.replica.ApplyUserChanged
	case schema.UserDeleted:
		apply = c.replica.ApplyUserDeleted
	default:
		c.logger.Debug("ignoring unhandled user event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}

	var evt schema.UserEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse UserEvent data",
			zap.String("type", cloudEvent.Type),
			zap.Error(err),
		)
		return nil
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = cloudEvent.Time
	}

	if err := apply(ctx, evt); err != nil {
		if _, rejected := domain.CodeOf(err); rejected {
			c.logger.Warn("skipping rejected user event",
				zap.String("type", cloudEvent.Type),
				zap.Error(err),
			)
			return nil
		}
		return err
	}
	return nil
}
