package commands_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogItem(t *testing.T, id, name, price string) ports.CatalogItem {
	t.Helper()
	money, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	return ports.CatalogItem{ID: id, Name: name, Price: money}
}

func newCreateOrderCommand(t *testing.T, lines ...commands.OrderLine) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand("Jane Doe", "1 Main St", "jane@example.com", lines)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t,
		commands.OrderLine{ProductID: "A", Quantity: 2},
		commands.OrderLine{ProductID: "B", Quantity: 3},
	)

	catalog := new(MockCatalogClient)
	catalog.On("GetItem", ctx, "A").Return(catalogItem(t, "A", "Margherita", "12.50"), true, nil).Once()
	catalog.On("GetItem", ctx, "B").Return(catalogItem(t, "B", "Cola", "3.00"), true, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Run(assignID).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalog, 0, nil)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, created.ID().IsZero())
	assert.Equal(t, order.Created, created.Status())
	assert.Equal(t, "34.00", created.TotalAmount().String())
	require.Len(t, created.Items(), 2)
	assert.Equal(t, "Margherita", created.Items()[0].Name())
	assert.Equal(t, "12.50", created.Items()[0].Price().String())
	assert.Equal(t, "Cola", created.Items()[1].Name())
	assert.Empty(t, created.PullDomainEvents())
	catalog.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	catalog := new(MockCatalogClient)

	h := commands.NewCreateOrderCommandHandler(factory, catalog, 0, nil)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
	catalog.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t,
		commands.OrderLine{ProductID: "missing", Quantity: 1},
		commands.OrderLine{ProductID: "B", Quantity: 1},
	)

	catalog := new(MockCatalogClient)
	catalog.On("GetItem", ctx, "missing").Return(ports.CatalogItem{}, false, nil).Once()
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, catalog, 0, nil)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrReferenceIsInvalid)
	assert.Contains(t, err.Error(), "productId missing")
	catalog.AssertNumberOfCalls(t, "GetItem", 1)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_CatalogUnavailable(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, commands.OrderLine{ProductID: "A", Quantity: 1})

	catalog := new(MockCatalogClient)
	catalog.On("GetItem", ctx, "A").
		Return(ports.CatalogItem{}, false, errs.NewDependencyIsUnavailableError("catalog")).Once()
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, catalog, 0, nil)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrDependencyIsUnavailable)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_UnexpectedCatalogError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, commands.OrderLine{ProductID: "A", Quantity: 1})

	catalog := new(MockCatalogClient)
	catalog.On("GetItem", ctx, "A").Return(ports.CatalogItem{}, false, errors.New("bad payload")).Once()
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, catalog, 0, nil)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrDependencyIsUnavailable)
	assert.NotErrorIs(t, err, errs.ErrReferenceIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_ParallelReportsEarliestLine(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t,
		commands.OrderLine{ProductID: "A", Quantity: 1},
		commands.OrderLine{ProductID: "missing", Quantity: 1},
		commands.OrderLine{ProductID: "down", Quantity: 1},
	)

	catalog := new(MockCatalogClient)
	catalog.On("GetItem", ctx, "A").Return(catalogItem(t, "A", "Margherita", "12.50"), true, nil).Once()
	catalog.On("GetItem", ctx, "missing").Return(ports.CatalogItem{}, false, nil).Once()
	catalog.On("GetItem", ctx, "down").
		Return(ports.CatalogItem{}, false, errs.NewDependencyIsUnavailableError("catalog")).Once()
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, catalog, 3, nil)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrReferenceIsInvalid)
	assert.NotErrorIs(t, err, errs.ErrDependencyIsUnavailable)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_ParallelKeepsLineOrder(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t,
		commands.OrderLine{ProductID: "A", Quantity: 1},
		commands.OrderLine{ProductID: "B", Quantity: 2},
		commands.OrderLine{ProductID: "C", Quantity: 3},
	)

	catalog := new(MockCatalogClient)
	catalog.On("GetItem", ctx, "A").Return(catalogItem(t, "A", "a", "1.00"), true, nil).Once()
	catalog.On("GetItem", ctx, "B").Return(catalogItem(t, "B", "b", "2.00"), true, nil).Once()
	catalog.On("GetItem", ctx, "C").Return(catalogItem(t, "C", "c", "3.00"), true, nil).Once()

	repo := new(MockOrderRepository)
	repo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Run(assignID).Return(nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalog, 2, nil)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	items := created.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "A", items[0].ProductID())
	assert.Equal(t, "B", items[1].ProductID())
	assert.Equal(t, "C", items[2].ProductID())
	assert.Equal(t, "14.00", created.TotalAmount().String())
}

func TestCreateOrderCommandHandler_Handle_SaveError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, commands.OrderLine{ProductID: "A", Quantity: 1})

	catalog := new(MockCatalogClient)
	catalog.On("GetItem", ctx, "A").Return(catalogItem(t, "A", "a", "1.00"), true, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("save error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalog, 0, nil)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "save error")
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, commands.OrderLine{ProductID: "A", Quantity: 1})

	catalog := new(MockCatalogClient)
	catalog.On("GetItem", ctx, "A").Return(catalogItem(t, "A", "a", "1.00"), true, nil).Once()

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, catalog, 0, nil)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
