package order

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when a zero value Customer is used.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is the person an order is delivered to. It is copied into the
// order when the order is placed and never changes afterwards. The e-mail
// doubles as the customer identifier on outgoing notifications.
type Customer struct { //nolint:recvcheck //using for validation
	fullName string
	address  string
	email    string

	guard guard.ConstructorGuard
}

// NewCustomer validates that every field is present and that email is a bare
// address such as "jane@example.com".
func NewCustomer(fullName, address, email string) (Customer, error) {
	c := Customer{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setFullName(fullName),
		c.setAddress(address),
		c.setEmail(email),
	); err != nil {
		return Customer{}, err
	}

	return c, nil
}

func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c Customer) FullName() string {
	return c.fullName
}

func (c Customer) Address() string {
	return c.address
}

func (c Customer) Email() string {
	return c.email
}

func (c *Customer) setFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return errs.NewValueIsRequiredError("customer.fullName")
	}
	c.fullName = fullName
	return nil
}

func (c *Customer) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("customer.address")
	}
	c.address = address
	return nil
}

func (c *Customer) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("customer.email")
	}

	parsed, err := mail.ParseAddress(email)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer.email", err)
	}
	if parsed.Address != email {
		return errs.NewValueIsInvalidErrorWithCause(
			"customer.email",
			fmt.Errorf("%q is not a bare e-mail address", email),
		)
	}

	c.email = email
	return nil
}
