package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkaadapter "ordering/internal/adapters/out/kafka"
	"ordering/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMessageWriter struct{ mock.Mock }

func (m *MockMessageWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func testEvent() order.StatusChangedEvent {
	return order.StatusChangedEvent{
		EventType:    order.EventTypeStatusChanged,
		OrderID:      "6f1c2a3e-0000-4000-8000-000000000001",
		CustomerID:   "jane@example.com",
		CustomerName: "Jane Doe",
		Status:       "PREPARING",
		OccurredAt:   time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestOrderEventPublisher_Publish(t *testing.T) {
	ctx := t.Context()
	writer := new(MockMessageWriter)
	var written []kafka.Message
	writer.On("WriteMessages", ctx, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	err := kafkaadapter.NewOrderEventPublisher(writer, "order.status.changed").Publish(ctx, testEvent())

	require.NoError(t, err)
	require.Len(t, written, 1)
	msg := written[0]
	assert.Equal(t, "order.status.changed", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, kafkaadapter.HeaderEventType, msg.Headers[0].Key)
	assert.Equal(t, order.EventTypeStatusChanged, string(msg.Headers[0].Value))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, map[string]any{
		"eventType":    "ORDER_STATUS_CHANGED",
		"orderId":      "6f1c2a3e-0000-4000-8000-000000000001",
		"customerId":   "jane@example.com",
		"customerName": "Jane Doe",
		"status":       "PREPARING",
		"occurredAt":   "2024-05-01T12:30:00Z",
	}, body)
	writer.AssertExpectations(t)
}

func TestOrderEventPublisher_PublishError(t *testing.T) {
	ctx := t.Context()
	writer := new(MockMessageWriter)
	brokerErr := errors.New("leader not available")
	writer.On("WriteMessages", ctx, mock.Anything).Return(brokerErr).Once()

	err := kafkaadapter.NewOrderEventPublisher(writer, "order.status.changed").Publish(ctx, testEvent())

	require.ErrorIs(t, err, brokerErr)
	assert.Contains(t, err.Error(), "6f1c2a3e-0000-4000-8000-000000000001")
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, kafkaadapter.ParseBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, kafkaadapter.ParseBrokers(""))
}

func TestNewWriter(t *testing.T) {
	w := kafkaadapter.NewWriter([]string{"localhost:9092"}, "orders.exchange", true)
	defer func() { _ = w.Close() }()

	assert.Equal(t, "orders.exchange", w.Topic)
	assert.True(t, w.Async)
	assert.Equal(t, kafkaadapter.DefaultBatchTimeout, w.BatchTimeout)
	assert.Less(t, w.BatchTimeout, 100*time.Millisecond)
}
