package commands

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents the bound rider moving an order forward.
// Pending is never a valid target: an accepted order cannot be handed back.
type UpdateOrderStatusCommand struct {
	riderID   kernel.UUID
	orderID   kernel.UUID
	newStatus order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(riderID, orderID kernel.UUID, newStatus order.Status) (UpdateOrderStatusCommand, error) {
	var errRider, errOrder, errStatus error
	if riderID.IsZero() {
		errRider = errs.NewValueIsRequiredError("riderID")
	}
	if orderID.IsZero() {
		errOrder = errs.NewValueIsRequiredError("orderID")
	}
	switch newStatus {
	case order.InProgress, order.Delivered, order.Cancelled:
	default:
		errStatus = errs.NewValueIsInvalidErrorWithCause("newStatus",
			fmt.Errorf("%s is not a status a rider can set", newStatus))
	}
	if err := errors.Join(errRider, errOrder, errStatus); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		riderID:   riderID,
		orderID:   orderID,
		newStatus: newStatus,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}
