package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when a zero value Item is used.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one ordered line. Name and unit price are a snapshot of the catalog
// entry taken when the order was placed; later catalog changes never reach an
// existing order.
type Item struct { //nolint:recvcheck //using for validation
	productID string
	name      string
	price     kernel.Money
	quantity  int

	guard guard.ConstructorGuard
}

// NewItem builds a line from a resolved catalog entry. Quantity must be at least 1.
func NewItem(productID, name string, price kernel.Money, quantity int) (Item, error) {
	item := Item{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setPrice(price),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() string {
	return i.productID
}

func (i Item) Name() string {
	return i.name
}

// Price is the unit price at the time the order was placed.
func (i Item) Price() kernel.Money {
	return i.price
}

func (i Item) Quantity() int {
	return i.quantity
}

// Subtotal is Price × Quantity.
func (i Item) Subtotal() kernel.Money {
	return i.price.MultiplyBy(i.quantity)
}

func (i *Item) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}
