package queries

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// ListOrdersQueryResponse is one page of orders plus the overall count.
type ListOrdersQueryResponse struct {
	TotalRecords int64
	Orders       []*order.Order
}

// ListOrdersQueryHandler pages through the store. The page and the count are
// read separately, so they may disagree under concurrent writes.
type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewListOrdersQueryHandler(repo ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{repo: repo}
}

// Handle passes offset and limit to the store unchanged.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	orders, err := h.repo.GetPage(ctx, query.Offset(), query.Limit())
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	total, err := h.repo.Count(ctx)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{
		TotalRecords: total,
		Orders:       orders,
	}, nil
}
