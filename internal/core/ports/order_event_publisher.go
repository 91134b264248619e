package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// OrderEventPublisher delivers order events to the message broker.
// Publishing is best effort: a failed publish is reported but never retried
// by the core. The broker may still redeliver an event, so consumers must
// tolerate duplicates.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event order.StatusChangedEvent) error
}
