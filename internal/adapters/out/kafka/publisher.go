// Package kafka publishes order events to a Kafka topic.
//
// The broker destination is an exchange/routing-key pair: the exchange is the
// topic and the routing key becomes the message key.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// HeaderEventType carries the event type so consumers can filter without
// decoding the body.
const HeaderEventType = "event-type"

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderEventPublisher implements ports.OrderEventPublisher.
type OrderEventPublisher struct {
	writer     MessageWriter
	routingKey string
}

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

func NewOrderEventPublisher(writer MessageWriter, routingKey string) *OrderEventPublisher {
	return &OrderEventPublisher{
		writer:     writer,
		routingKey: routingKey,
	}
}

// DefaultBatchTimeout bounds how long a single event waits for a batch to
// fill before it is flushed.
const DefaultBatchTimeout = 10 * time.Millisecond

// NewWriter builds a writer for the exchange topic. An async writer returns
// before the broker acknowledges, so delivery failures are only logged by kafka-go.
func NewWriter(brokers []string, exchange string, async bool) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  exchange,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  async,
		BatchTimeout:           DefaultBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(brokersCSV string) []string {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (p *OrderEventPublisher) Publish(ctx context.Context, event order.StatusChangedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.EventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(p.routingKey),
		Value: data,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(event.EventType)},
		},
		Time: time.Now().UTC(),
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s event for order %s: %w", event.EventType, event.OrderID, err)
	}
	return nil
}
