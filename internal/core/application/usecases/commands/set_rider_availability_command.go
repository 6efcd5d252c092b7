package commands

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrSetRiderAvailabilityCommandIsNotConstructed = errors.New(
	"SetRiderAvailabilityCommand must be created via NewSetRiderAvailabilityCommand constructor",
)

// SetRiderAvailabilityCommand represents a rider going on or coming back from a break.
type SetRiderAvailabilityCommand struct {
	riderID kernel.UUID
	status  rider.Status

	guard guard.ConstructorGuard
}

func NewSetRiderAvailabilityCommand(riderID kernel.UUID, status rider.Status) (SetRiderAvailabilityCommand, error) {
	var errRider, errStatus error
	if riderID.IsZero() {
		errRider = errs.NewValueIsRequiredError("riderID")
	}
	if status != rider.Available && status != rider.OnBreak {
		errStatus = errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s cannot be set by the rider", status))
	}
	if err := errors.Join(errRider, errStatus); err != nil {
		return SetRiderAvailabilityCommand{}, err
	}

	return SetRiderAvailabilityCommand{riderID: riderID, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c SetRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderAvailabilityCommandIsNotConstructed)
}

func (c SetRiderAvailabilityCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c SetRiderAvailabilityCommand) Status() rider.Status {
	return c.status
}
