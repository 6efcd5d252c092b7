package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a customer withdrawing an order nobody accepted yet.
type CancelOrderCommand struct {
	customerID kernel.UUID
	orderID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(customerID, orderID kernel.UUID) (CancelOrderCommand, error) {
	var errCustomer, errOrder error
	if customerID.IsZero() {
		errCustomer = errs.NewValueIsRequiredError("customerID")
	}
	if orderID.IsZero() {
		errOrder = errs.NewValueIsRequiredError("orderID")
	}
	if err := errors.Join(errCustomer, errOrder); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{customerID: customerID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
