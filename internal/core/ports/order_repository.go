// Package ports defines the contracts between the ordering core and its
// infrastructure: persistence, the product catalog and the event broker.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Save persists the aggregate together with its items. An order without an
	// identifier is inserted and receives a fresh one through AssignID; an order
	// that already has one overwrites the stored copy.
	Save(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with the given identifier, or an
	// errs.ObjectNotFoundError when there is none.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetPage returns at most limit orders after skipping offset of them,
	// ordered by creation time and then by identifier.
	//
	// Example:
	//   page, err := repo.GetPage(ctx, 40, 20) // third page of twenty
	GetPage(ctx context.Context, offset, limit int) ([]*order.Order, error)

	// Count returns the number of stored orders.
	Count(ctx context.Context) (int64, error)

	// CountByStatus returns the number of orders per status. Statuses without
	// orders may be absent from the map.
	CountByStatus(ctx context.Context) (map[order.Status]int64, error)
}
