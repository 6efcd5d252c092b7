package order

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned for an Order that bypassed NewOrder and RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of the delivery lifecycle.
//
// Order follows these invariants:
//   - id, customerID, description and both addresses never change after creation
//   - riderID is set exactly once, by Accept, and is never reassigned
//   - riderID is unset while Pending and set while InProgress or Delivered; an order
//     cancelled before acceptance keeps it unset
//   - updatedAt moves on every mutation
//
// Mutating methods record an Event which the unit of work moves to the outbox.
type Order struct {
	id                 kernel.UUID
	customerID         kernel.UUID
	riderID            *kernel.UUID
	logisticsCompanyID *kernel.UUID
	description        string
	pickupAddress      kernel.Address
	deliveryAddress    kernel.Address
	status             Status
	createdAt          time.Time
	updatedAt          time.Time
	events             []kernel.DomainEvent
	guard              guard.ConstructorGuard
}

// NewOrder creates a Pending order without a rider.
//
// Parameters:
//   - id: identifier of the new order
//   - customerID: the owning customer
//   - description: what is delivered, must not be blank
//   - pickup, delivery: constructed addresses
//   - logisticsCompanyID: optional company the order is routed to
//   - now: creation time, also used as updatedAt
//
// Returns the order or the joined validation errors of every invalid argument.
//
// Example:
//
//	pickup, _ := kernel.NewAddress("pickupAddress", "A St")
//	delivery, _ := kernel.NewAddress("deliveryAddress", "B Ave")
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, "Book", pickup, delivery, nil, time.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	description string,
	pickup kernel.Address,
	delivery kernel.Address,
	logisticsCompanyID *kernel.UUID,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setDescription(description),
		o.setPickupAddress(pickup),
		o.setDeliveryAddress(delivery),
		o.setLogisticsCompanyID(logisticsCompanyID),
	); err != nil {
		return nil, err
	}

	o.record(EventCreated, Unknown)
	return o, nil
}

// RestoreOrder rehydrates an order from storage. It checks the same field rules as
// NewOrder plus the status/rider invariant, and records no events.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	riderID *kernel.UUID,
	logisticsCompanyID *kernel.UUID,
	description string,
	pickup kernel.Address,
	delivery kernel.Address,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setDescription(description),
		o.setPickupAddress(pickup),
		o.setDeliveryAddress(delivery),
		o.setLogisticsCompanyID(logisticsCompanyID),
		o.setStatus(status, riderID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) Description() string {
	return o.description
}

func (o *Order) PickupAddress() kernel.Address {
	return o.pickupAddress
}

func (o *Order) DeliveryAddress() kernel.Address {
	return o.deliveryAddress
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

func (o *Order) DomainEvents() []kernel.DomainEvent {
	return o.events
}

// RiderID returns a copy of the bound rider's id, or nil before acceptance.
func (o *Order) RiderID() *kernel.UUID {
	if o.riderID == nil {
		return nil
	}
	id := *o.riderID
	return &id
}

// LogisticsCompanyID returns a copy of the routed company's id, or nil.
func (o *Order) LogisticsCompanyID() *kernel.UUID {
	if o.logisticsCompanyID == nil {
		return nil
	}
	id := *o.logisticsCompanyID
	return &id
}

// ClearDomainEvents drops the recorded events once they are persisted.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// IsAssignedTo reports whether riderID is the rider bound to the order.
func (o *Order) IsAssignedTo(riderID kernel.UUID) bool {
	return o.riderID != nil && o.riderID.IsEqual(riderID)
}

// IsOwnedBy reports whether customerID placed the order.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// IsRoutedTo reports whether the order is routed to the given logistics company.
func (o *Order) IsRoutedTo(companyID kernel.UUID) bool {
	return o.logisticsCompanyID != nil && o.logisticsCompanyID.IsEqual(companyID)
}

// Accept binds the order to riderID and moves it to InProgress.
//
// Returns:
//   - nil on success
//   - ConflictError with AlreadyInProgress, AlreadyDelivered or AlreadyCancelled when the order is not Pending
//   - a validation error for a zero riderID
//
// The rider side of the transition (Busy, current order) is handled by services.OrderAssigner.
func (o *Order) Accept(riderID kernel.UUID, now time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateAccept(); err != nil {
		return err
	}

	previous := o.status
	o.status = InProgress
	o.riderID = &riderID
	o.touch(now)
	o.record(EventAccepted, previous)
	return nil
}

// ChangeStatus applies a status update requested by riderID.
//
// The rider must be the one bound to the order, otherwise a ForbiddenError is returned
// and the order is left unchanged, whatever its status. A request for the current
// InProgress status is accepted without touching the order. See Status.TransitionTo
// for the remaining rules.
func (o *Order) ChangeStatus(riderID kernel.UUID, target Status, now time.Time) error {
	if !o.IsAssignedTo(riderID) {
		return errs.NewForbiddenError("order is not assigned to this rider")
	}

	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	if next == o.status {
		return nil
	}

	previous := o.status
	o.status = next
	o.touch(now)
	o.record(EventStatusChanged, previous)
	return nil
}

// CancelByCustomer cancels a Pending order on behalf of the customer who placed it.
// The rider stays unset.
func (o *Order) CancelByCustomer(customerID kernel.UUID, now time.Time) error {
	if !o.IsOwnedBy(customerID) {
		return errs.NewForbiddenError("order belongs to another customer")
	}

	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	previous := o.status
	o.status = next
	o.touch(now)
	o.record(EventStatusChanged, previous)
	return nil
}

func (o *Order) touch(now time.Time) {
	now = now.UTC()
	if now.Before(o.updatedAt) {
		now = o.updatedAt
	}
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if customerID.IsZero() {
		return errs.NewValueIsRequiredError("customerID")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	o.description = description
	return nil
}

func (o *Order) setPickupAddress(address kernel.Address) error {
	if address.IsEmpty() {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	o.pickupAddress = address
	return nil
}

func (o *Order) setDeliveryAddress(address kernel.Address) error {
	if address.IsEmpty() {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setLogisticsCompanyID(companyID *kernel.UUID) error {
	if companyID == nil {
		return nil
	}
	if companyID.IsZero() {
		return errs.NewValueIsInvalidError("logisticsCompanyID")
	}
	id := *companyID
	o.logisticsCompanyID = &id
	return nil
}

func (o *Order) setStatus(status Status, riderID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if riderID != nil && riderID.IsZero() {
		return errs.NewValueIsInvalidError("riderID")
	}
	if err := status.ValidateCanHaveRider(riderID != nil); err != nil {
		return err
	}
	o.status = status
	if riderID != nil {
		id := *riderID
		o.riderID = &id
	}
	return nil
}
