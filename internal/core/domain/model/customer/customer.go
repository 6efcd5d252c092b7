// Package customer holds the Customer aggregate: an account that places orders.
// Customers have no lifecycle beyond sign-up.
package customer

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned for a Customer that bypassed its constructors.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer constructor")

type Customer struct {
	id           kernel.UUID
	name         string
	email        kernel.Email
	phone        string
	passwordHash string
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

// NewCustomer signs a customer up. passwordHash must already be hashed.
func NewCustomer(id kernel.UUID, name string, email kernel.Email, phone, passwordHash string, now time.Time) (*Customer, error) {
	return RestoreCustomer(id, name, email, phone, passwordHash, now.UTC())
}

// RestoreCustomer rehydrates a customer from storage.
func RestoreCustomer(id kernel.UUID, name string, email kernel.Email, phone, passwordHash string, createdAt time.Time) (*Customer, error) {
	c := &Customer{createdAt: createdAt, guard: guard.NewConstructorGuard()}

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	var errName, errPhone, errHash error
	if name == "" {
		errName = errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		errPhone = errs.NewValueIsRequiredError("phone")
	}
	if passwordHash == "" {
		errHash = errs.NewValueIsRequiredError("passwordHash")
	}

	if err := errors.Join(id.Validate(), errName, email.Validate(), errPhone, errHash); err != nil {
		return nil, err
	}

	c.id = id
	c.name = name
	c.email = email
	c.phone = phone
	c.passwordHash = passwordHash
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Email() kernel.Email {
	return c.email
}

func (c *Customer) Phone() string {
	return c.phone
}

func (c *Customer) PasswordHash() string {
	return c.passwordHash
}

func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}
