package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a rider claiming a Pending order.
type AcceptOrderCommand struct {
	riderID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(riderID, orderID kernel.UUID) (AcceptOrderCommand, error) {
	var errRider, errOrder error
	if riderID.IsZero() {
		errRider = errs.NewValueIsRequiredError("riderID")
	}
	if orderID.IsZero() {
		errOrder = errs.NewValueIsRequiredError("orderID")
	}
	if err := errors.Join(errRider, errOrder); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		riderID: riderID,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
