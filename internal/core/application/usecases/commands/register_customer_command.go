package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrRegisterCustomerCommandIsNotConstructed = errors.New(
	"RegisterCustomerCommand must be created via NewRegisterCustomerCommand constructor",
)

// RegisterCustomerCommand signs up a customer account.
type RegisterCustomerCommand struct {
	customerID  kernel.UUID
	name        string
	phone       string
	credentials Credentials

	guard guard.ConstructorGuard
}

func NewRegisterCustomerCommand(customerID kernel.UUID, name, email, phone, password string) (RegisterCustomerCommand, error) {
	var errName, errPhone error
	if isBlank(name) {
		errName = errs.NewValueIsRequiredError("name")
	}
	if isBlank(phone) {
		errPhone = errs.NewValueIsRequiredError("phone")
	}
	credentials, errCredentials := newCredentials(email, password)

	if err := errors.Join(customerID.Validate(), errName, errPhone, errCredentials); err != nil {
		return RegisterCustomerCommand{}, err
	}

	return RegisterCustomerCommand{
		customerID:  customerID,
		name:        name,
		phone:       phone,
		credentials: credentials,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterCustomerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCustomerCommandIsNotConstructed)
}

func (c RegisterCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c RegisterCustomerCommand) Name() string {
	return c.name
}

func (c RegisterCustomerCommand) Phone() string {
	return c.phone
}

func (c RegisterCustomerCommand) Credentials() Credentials {
	return c.credentials
}
