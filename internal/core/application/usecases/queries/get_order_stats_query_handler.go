package queries

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

type GetOrderStatsQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetOrderStatsQueryHandler(repo ports.OrderRepository) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{repo: repo}
}

// Handle returns one entry per valid status in lifecycle order. Statuses
// without orders are reported with a zero count.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) ([]GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts, err := h.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	statuses := order.AllStatuses()
	stats := make([]GetOrderStatsQueryResponse, 0, len(statuses))
	for _, status := range statuses {
		stats = append(stats, GetOrderStatsQueryResponse{
			Status: status,
			Count:  counts[status],
		})
	}

	return stats, nil
}
