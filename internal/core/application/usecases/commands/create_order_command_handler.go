package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// CreateOrderCommandHandler places orders. Each line is resolved through the
// catalog, which supplies the name and unit price snapshotted into the order.
//
// Lookups run one after another unless a lookup concurrency above 1 is
// configured. Either way the first failing line in submission order decides
// the error, and nothing is persisted when any line fails.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalogClient, 4, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Printf("Order %s placed, total %s\n", created.ID(), created.TotalAmount())
type CreateOrderCommandHandler struct {
	uowFactory        OrderUoWFactory
	catalog           ports.CatalogClient
	lookupConcurrency int
	logger            *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// A lookupConcurrency of 0 or 1 keeps catalog lookups sequential.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.CatalogClient,
	lookupConcurrency int,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateOrderCommandHandler{
		uowFactory:        uowFactory,
		catalog:           catalog,
		lookupConcurrency: lookupConcurrency,
		logger:            logger.With("component", "create_order_handler"),
	}
}

// Handle resolves the lines, builds the order in Created status and stores it.
// Catalog misses surface as errs.ReferenceIsInvalidError and an unreachable
// catalog as errs.DependencyIsUnavailableError.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := h.resolveItems(ctx, cmd.Lines())
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(cmd.Customer(), items, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Save(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order created",
		"orderId", created.ID().String(),
		"items", len(items),
		"total", created.TotalAmount().String(),
	)
	return created, nil
}

func (h *CreateOrderCommandHandler) resolveItems(ctx context.Context, lines []OrderLine) ([]order.Item, error) {
	items := make([]order.Item, len(lines))

	if h.lookupConcurrency <= 1 {
		for i, line := range lines {
			item, err := h.resolveItem(ctx, line)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil
	}

	// No shared cancellation: a late line failing must not turn an earlier
	// line's lookup into a spurious context error.
	lineErrs := make([]error, len(lines))
	var g errgroup.Group
	g.SetLimit(h.lookupConcurrency)
	for i, line := range lines {
		g.Go(func() error {
			item, err := h.resolveItem(ctx, line)
			if err != nil {
				lineErrs[i] = err
				return err
			}
			items[i] = item
			return nil
		})
	}

	if g.Wait() != nil {
		for _, err := range lineErrs {
			if err != nil {
				return nil, err
			}
		}
	}
	return items, nil
}

func (h *CreateOrderCommandHandler) resolveItem(ctx context.Context, line OrderLine) (order.Item, error) {
	catalogItem, found, err := h.catalog.GetItem(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, errs.ErrDependencyIsUnavailable) {
			return order.Item{}, err
		}
		return order.Item{}, fmt.Errorf("catalog lookup of %s: %w", line.ProductID, err)
	}
	if !found {
		return order.Item{}, errs.NewReferenceIsInvalidError("productId", line.ProductID)
	}

	return order.NewItem(line.ProductID, catalogItem.Name, catalogItem.Price, line.Quantity)
}
