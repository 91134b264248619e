package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type ChangeOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
}

// Server maps the orders REST API onto application use cases. Handlers return
// domain errors untouched; errorHandler turns them into responses.
type Server struct {
	// Command handlers
	createOrderHandler       CreateOrderHandler
	changeOrderStatusHandler ChangeOrderStatusHandler

	// Query handlers
	getOrderHandler   GetOrderHandler
	listOrdersHandler ListOrdersHandler
}

func NewServer(
	createOrderHandler CreateOrderHandler,
	changeOrderStatusHandler ChangeOrderStatusHandler,
	getOrderHandler GetOrderHandler,
	listOrdersHandler ListOrdersHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
	}
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed request body").SetInternal(err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.Customer.FullName,
		req.Customer.Address,
		req.Customer.Email,
		req.lines(),
	)
	if err != nil {
		return err
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, newOrderResponse(created))
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(found))
}

// ListOrders handles GET /orders?offset=&limit=.
func (s *Server) ListOrders(ctx echo.Context) error {
	offset, offsetErr := intQueryParam(ctx, "offset", 0)
	limit, limitErr := intQueryParam(ctx, "limit", queries.DefaultLimit)
	if offsetErr != nil || limitErr != nil {
		return errors.Join(offsetErr, limitErr)
	}

	query, err := queries.NewListOrdersQuery(offset, limit)
	if err != nil {
		return err
	}

	page, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderHistoryResponse(page.TotalRecords, page.Orders))
}

// UpdateOrderStatus handles PATCH /orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return err
	}

	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed request body").SetInternal(err)
	}
	if req.Status == "" {
		return errs.NewValueIsRequiredError("status")
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return err
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(updated))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// orderIDParam reads the :id path parameter. An id that is not a UUID cannot
// name a stored order, so it is reported as not found.
func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Param("id")
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewObjectNotFoundErrorWithCause("id", raw, err)
	}
	return id, nil
}

func intQueryParam(ctx echo.Context, name string, def int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not an integer", raw))
	}
	return v, nil
}
