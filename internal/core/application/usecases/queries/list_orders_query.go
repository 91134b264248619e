package queries

import (
	"errors"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through stored orders, oldest first.
//
// Example:
//
//	query, err := NewListOrdersQuery(0, DefaultLimit)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("showing %d of %d orders\n", len(page.Orders), page.TotalRecords)
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	offset int
	limit  int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery requires offset >= 0 and 1 <= limit <= MaxLimit.
func NewListOrdersQuery(offset, limit int) (ListOrdersQuery, error) {
	query := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOffset(offset),
		query.setLimit(limit),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Offset() int {
	return q.offset
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q *ListOrdersQuery) setOffset(offset int) error {
	if offset < 0 {
		return errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	q.offset = offset
	return nil
}

func (q *ListOrdersQuery) setLimit(limit int) error {
	if limit < 1 || limit > MaxLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit)
	}
	q.limit = limit
	return nil
}
