package commands

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one requested product and how many of it.
type OrderLine struct {
	ProductID string
	Quantity  int
}

// CreateOrderCommand represents a request to place a new order. Names and
// prices are not part of the request; they are taken from the catalog.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("Jane Doe", "1 Main St", "jane@example.com", []OrderLine{
//	    {ProductID: "pizza-01", Quantity: 2},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customer order.Customer
	lines    []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the customer and the requested lines. At
// least one line is required, every product id must be non-blank and every
// quantity at least 1. All problems are reported together.
func NewCreateOrderCommand(fullName, address, email string, lines []OrderLine) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(fullName, address, email),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Lines returns a copy of the requested lines in submission order.
func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateOrderCommand) setCustomer(fullName, address, email string) error {
	customer, err := order.NewCustomer(fullName, address, email)
	if err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var lineErrs []error
	for i, line := range lines {
		if strings.TrimSpace(line.ProductID) == "" {
			lineErrs = append(lineErrs, errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].productId", i)))
		}
		if line.Quantity < 1 {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is less than 1", line.Quantity),
			))
		}
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
