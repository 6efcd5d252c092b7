package services

import (
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"
)

// OrderAssigner is a domain service that binds a rider to an order and frees it again,
// keeping both aggregates in lockstep.
//
// Business rules:
//   - the order is checked before the rider, so a taken order reports its own conflict
//     even when the caller is also busy
//   - every precondition is checked before either aggregate changes, so a failed
//     Assign leaves both untouched
//   - a rider is released only from the order it carries
//
// Example usage:
//
//	assigner := services.NewOrderAssigner()
//	if err := assigner.Assign(o, r, time.Now()); err != nil {
//	    return err // NotFound/Conflict/Forbidden from the aggregates
//	}
//	// persist o and r in one transaction
type OrderAssigner struct{}

func NewOrderAssigner() OrderAssigner {
	return OrderAssigner{}
}

// Assign accepts o on behalf of r.
//
// Returns:
//   - ConflictError(AlreadyInProgress|AlreadyDelivered|AlreadyCancelled) when o is not Pending
//   - ForbiddenError when r is inactive
//   - ConflictError(RiderUnavailable) when r is Busy or OnBreak
func (OrderAssigner) Assign(o *order.Order, r *rider.Rider, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}

	if err := o.Status().ValidateAccept(); err != nil {
		return err
	}
	if err := r.CanTakeOrder(); err != nil {
		return err
	}

	if err := o.Accept(r.ID(), now); err != nil {
		return err
	}
	return r.TakeOrder(o.ID(), o.PickupAddress(), now)
}

// Release frees r once o has reached a terminal status. It reports whether r changed.
// A rider carrying some other order is left alone.
func (OrderAssigner) Release(o *order.Order, r *rider.Rider, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := r.Validate(); err != nil {
		return false, err
	}
	if !o.Status().IsTerminal() {
		return false, errs.NewConflictError(errs.ReasonInvalidTransition, "rider is released only from finished orders")
	}
	if !o.IsAssignedTo(r.ID()) {
		return false, nil
	}
	return r.Release(o.ID(), now), nil
}

// Holds reports whether o still justifies r being Busy: o exists, is InProgress and is
// assigned to r. A nil o stands for a missing order.
func (OrderAssigner) Holds(o *order.Order, r *rider.Rider) bool {
	if o == nil || r == nil {
		return false
	}
	return o.Status() == order.InProgress && o.IsAssignedTo(r.ID()) && r.IsCarrying(o.ID())
}
