// Package kafka consumes order events and turns them into customer notifications.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewReader builds a consumer group reader for the exchange topic.
func NewReader(brokers []string, exchange, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    exchange,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// NotificationConsumer logs one NOTIFICATION line per status change.
// Handling is idempotent, so redelivered messages are harmless.
type NotificationConsumer struct {
	reader     MessageReader
	logger     *slog.Logger
	retryDelay time.Duration
}

func NewNotificationConsumer(reader MessageReader, logger *slog.Logger) *NotificationConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationConsumer{
		reader:     reader,
		logger:     logger.With("component", "notification_consumer"),
		retryDelay: 2 * time.Second,
	}
}

// Run consumes until ctx is cancelled. Read errors are logged and retried
// after a pause; malformed messages are logged and committed.
func (c *NotificationConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.ErrorContext(ctx, "kafka read error", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.retryDelay):
			}
			continue
		}

		if err = c.Handle(ctx, msg); err != nil {
			c.logger.WarnContext(ctx, "skipping malformed order event",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
		}

		if err = c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.ErrorContext(ctx, "kafka commit error", "offset", msg.Offset, "error", err)
		}
	}
}

var errUnknownEventType = errors.New("unknown event type")

// Handle decodes one message and logs the notification.
func (c *NotificationConsumer) Handle(ctx context.Context, msg kafka.Message) error {
	var event order.StatusChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return err
	}
	if event.EventType != order.EventTypeStatusChanged {
		return errUnknownEventType
	}

	c.logger.InfoContext(ctx, "NOTIFICATION",
		"customer", event.CustomerName,
		"customerId", event.CustomerID,
		"orderId", event.OrderID,
		"newStatus", event.Status,
		"occurredAt", event.OccurredAt,
	)
	return nil
}
