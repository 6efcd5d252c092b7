package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer placing a delivery order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, "Book", "A St", "B Ave", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	customerID         kernel.UUID
	description        string
	pickupAddress      kernel.Address
	deliveryAddress    kernel.Address
	logisticsCompanyID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field and joins the failures.
// logisticsCompanyID is optional.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	description string,
	pickupAddress string,
	deliveryAddress string,
	logisticsCompanyID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		description:        description,
		logisticsCompanyID: logisticsCompanyID,
		guard:              guard.NewConstructorGuard(),
	}

	var errDescription, errCustomer error
	if customerID.IsZero() {
		errCustomer = errs.NewValueIsRequiredError("customerID")
	}
	if isBlank(description) {
		errDescription = errs.NewValueIsRequiredError("description")
	}

	pickup, errPickup := kernel.NewAddress("pickupAddress", pickupAddress)
	delivery, errDelivery := kernel.NewAddress("deliveryAddress", deliveryAddress)

	if err := errors.Join(orderID.Validate(), errCustomer, errDescription, errPickup, errDelivery); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.customerID = customerID
	cmd.pickupAddress = pickup
	cmd.deliveryAddress = delivery
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) Description() string {
	return c.description
}

func (c CreateOrderCommand) PickupAddress() kernel.Address {
	return c.pickupAddress
}

func (c CreateOrderCommand) DeliveryAddress() kernel.Address {
	return c.deliveryAddress
}

// LogisticsCompanyID returns the company the order is routed to, or nil.
func (c CreateOrderCommand) LogisticsCompanyID() *kernel.UUID {
	return c.logisticsCompanyID
}
