package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes one order write. An order row and its item rows are
// stored together or not at all.
//
// Begin must be called before OrderRepository is used. A deferred Rollback
// is safe: after Commit it does nothing.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// OrderRepository is bound to the transaction opened by Begin.
	OrderRepository() OrderRepository
}
