package order

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIDIsAlreadyAssigned is returned when a store tries to assign an
	// identifier to an order that already has one.
	ErrOrderIDIsAlreadyAssigned = errors.New("order already has an identifier")
)

// Order is the aggregate root of the ordering domain. It owns the customer and
// the ordered items and moves through the lifecycle described by Status.
//
// Order follows these invariants:
//   - totalAmount equals the sum of item subtotals computed when the order was placed
//   - status only changes through ChangeStatus, which consults IsTransitionAllowed
//   - createdAt never changes; updatedAt is refreshed on every accepted transition
//   - the identifier is absent until the store assigns it on first save
type Order struct {
	id          kernel.UUID
	customer    Customer
	items       []Item
	totalAmount kernel.Money
	status      Status
	createdAt   time.Time
	updatedAt   time.Time

	// domainEvents are recorded by ChangeStatus until PullDomainEvents drains them.
	domainEvents []StatusChangedEvent

	isConstructed bool
}

// NewOrder places a new order in Created status.
//
// Items keep the submission order. The total is computed here, once, from the
// snapshotted unit prices; an empty item list yields a zero total.
//
// Example:
//
//	customer, _ := order.NewCustomer("Jane Doe", "1 Main St", "jane@example.com")
//	price, _ := kernel.MoneyFromString("12.50")
//	item, _ := order.NewItem("pizza-01", "Margherita", price, 2)
//	o, err := order.NewOrder(customer, []order.Item{item}, time.Now())
func NewOrder(customer Customer, items []Item, now time.Time) (*Order, error) {
	o := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCustomer(customer),
		o.setItems(items),
		o.setCreatedAt(now),
	); err != nil {
		return nil, err
	}

	o.totalAmount = computeTotal(o.items)
	o.updatedAt = o.createdAt
	return o, nil
}

// RestoreOrder rebuilds an order read back from the store. The persisted total
// is kept as is: it was computed when the order was placed.
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	items []Item,
	totalAmount kernel.Money,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
		o.setTotalAmount(totalAmount),
		o.setStatus(status),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// ID returns the identifier, or a zero UUID before the first save.
func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Customer() Customer {
	return o.customer
}

// Items returns a copy of the ordered lines in submission order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AssignID is called by the store on first save.
func (o *Order) AssignID(id kernel.UUID) error {
	if !o.id.IsZero() {
		return ErrOrderIDIsAlreadyAssigned
	}
	return o.setID(id)
}

// ChangeStatus moves the order to target.
//
// A transition rejected by IsTransitionAllowed returns an errs.ConflictError
// naming both states, and the order is left untouched. An accepted transition,
// including one to the current status, refreshes updatedAt and records a
// StatusChangedEvent stamped with now.
func (o *Order) ChangeStatus(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if !IsTransitionAllowed(o.status, target) {
		return errs.NewConflictError(
			fmt.Sprintf("invalid status transition from %s to %s", o.status, target),
		)
	}

	o.status = target
	o.updatedAt = now
	o.domainEvents = append(o.domainEvents, newStatusChangedEvent(o, now))
	return nil
}

// PullDomainEvents returns the recorded events and forgets them.
func (o *Order) PullDomainEvents() []StatusChangedEvent {
	events := o.domainEvents
	o.domainEvents = nil
	return events
}

func computeTotal(items []Item) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotalAmount(totalAmount kernel.Money) error {
	if err := totalAmount.Validate(); err != nil {
		return err
	}
	o.totalAmount = totalAmount
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
