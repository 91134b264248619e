package commands

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"
)

// ChangeOrderStatusCommandHandler applies status transitions and announces
// them on the broker.
//
// The order is loaded, changed and saved in one transaction. Events are
// published only after the commit succeeded; a failed publish is logged and
// counted but the transition stays accepted.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		metrics:    m,
		logger:     logger.With("component", "change_order_status_handler"),
	}
}

// Handle returns errs.ObjectNotFoundError for an unknown order and
// errs.ConflictError for a transition the status machine rejects. In both
// cases nothing is saved and nothing is published.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(cmd.Status(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Save(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.ObserveTransition(aggregate.Status().String())
	// The transition is committed; the event must go out even if the caller
	// has gone away.
	h.publish(context.WithoutCancel(ctx), aggregate.PullDomainEvents())

	return aggregate, nil
}

func (h *ChangeOrderStatusCommandHandler) publish(ctx context.Context, events []order.StatusChangedEvent) {
	for _, event := range events {
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.metrics.ObservePublishFailure()
			h.logger.ErrorContext(ctx, "failed to publish order event",
				"orderId", event.OrderID,
				"status", event.Status,
				"error", err,
			)
			continue
		}
		h.logger.DebugContext(ctx, "order event published",
			"orderId", event.OrderID,
			"status", event.Status,
		)
	}
}
