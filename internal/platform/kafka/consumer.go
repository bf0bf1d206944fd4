package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const maxHandleAttempts = 3

// MessageHandler processes one message. A nil return commits the offset.
type MessageHandler func(ctx context.Context, msg kafkago.Message) error

// Consumer reads a single topic as part of a consumer group.
type Consumer struct {
	reader *kafkago.Reader
	topic  string
	logger *zap.Logger
}

// NewConsumer creates a group consumer for topic.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:     brokers,
			GroupID:     groupID,
			Topic:       topic,
			MinBytes:    1,
			MaxBytes:    10e6,
			StartOffset: kafkago.FirstOffset,
		}),
		topic:  topic,
		logger: logger,
	}
}

// Consume fetches messages until ctx is cancelled. A handler error is retried
// a few times; after that the message is logged and committed so one poison
// message cannot stall the partition.
func (c *Consumer) Consume(ctx context.Context, handle MessageHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to fetch message from %s: %w", c.topic, err)
		}

		if err := c.handleWithRetry(ctx, handle, msg); err != nil {
			c.logger.Error("giving up on message",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to commit offset on %s: %w", c.topic, err)
		}
	}
}

func (c *Consumer) handleWithRetry(ctx context.Context, handle MessageHandler, msg kafkago.Message) error {
	var err error
	for attempt := 1; attempt <= maxHandleAttempts; attempt++ {
		if err = handle(ctx, msg); err == nil {
			return nil
		}
		c.logger.Warn("message handler failed",
			zap.String("topic", msg.Topic),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
		}
	}
	return err
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
