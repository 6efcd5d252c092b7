package commands

import (
	"context"

	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"
)

// SetRiderAvailabilityCommandHandler toggles a rider between Available and OnBreak.
// A rider that got Busy in the meantime keeps its order: the conditional write fails
// and the handler reports ConflictError(RiderBusy).
type SetRiderAvailabilityCommandHandler struct {
	uowFactory RiderUoWFactory
	opts       handlerOptions
}

func NewSetRiderAvailabilityCommandHandler(uowFactory RiderUoWFactory, opts ...HandlerOption) SetRiderAvailabilityCommandHandler {
	return SetRiderAvailabilityCommandHandler{uowFactory: uowFactory, opts: newHandlerOptions(opts)}
}

func (h SetRiderAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetRiderAvailabilityCommand) (*rider.Rider, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := h.opts.bound(ctx)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := begin(ctx, uow); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riders := uow.RiderRepository()

	target, err := riders.Get(ctx, cmd.RiderID())
	if err != nil {
		return nil, errs.AsPersistence("get rider", err)
	}

	previous := target.Status()
	if err = target.ChangeAvailability(cmd.Status(), h.opts.now()); err != nil {
		return nil, err
	}
	if target.Status() == previous {
		return target, nil
	}

	if err = riders.UpdateIfStatus(ctx, target, previous); err != nil {
		if isStale(err) {
			return nil, errs.NewConflictErrorWithCause(errs.ReasonRiderBusy, "rider changed concurrently", err)
		}
		return nil, errs.AsPersistence("update rider", err)
	}

	if err = commit(ctx, uow); err != nil {
		return nil, err
	}

	return target, nil
}
