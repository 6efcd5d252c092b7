package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies a status change requested by the order's rider.
// Finishing an InProgress order (Delivered or Cancelled) frees the rider in the same
// unit of work, so no reader sees a finished order with a rider still Busy on it.
type UpdateOrderStatusCommandHandler struct {
	uowFactory AssignmentUoWFactory
	assigner   services.OrderAssigner
	opts       handlerOptions
}

func NewUpdateOrderStatusCommandHandler(uowFactory AssignmentUoWFactory, opts ...HandlerOption) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		assigner:   services.NewOrderAssigner(),
		opts:       newHandlerOptions(opts),
	}
}

// Handle checks, in order: the order exists, the caller is its rider (ForbiddenError),
// the order is not terminal (ConflictError(TerminalState)), the transition is allowed.
// InProgress to InProgress succeeds without writing anything.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
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

	orders := uow.OrderRepository()

	target, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, errs.AsPersistence("get order", err)
	}

	previous := target.Status()
	now := h.opts.now()
	if err = target.ChangeStatus(cmd.RiderID(), cmd.NewStatus(), now); err != nil {
		return nil, err
	}
	if target.Status() == previous {
		return target, nil
	}

	if err = orders.UpdateIfStatus(ctx, target, previous); err != nil {
		if isStale(err) {
			return nil, h.transitionConflict(ctx, uow, cmd, err)
		}
		return nil, errs.AsPersistence("update order", err)
	}

	if previous == order.InProgress && target.Status().IsTerminal() {
		if err = h.releaseRider(ctx, uow, target, now); err != nil {
			return nil, err
		}
	}

	if err = commit(ctx, uow); err != nil {
		return nil, err
	}

	return target, nil
}

func (h UpdateOrderStatusCommandHandler) releaseRider(
	ctx context.Context,
	uow AssignmentUoW,
	finished *order.Order,
	now time.Time,
) error {
	riderID := finished.RiderID()
	if riderID == nil {
		return nil
	}

	riders := uow.RiderRepository()
	carrier, err := riders.Get(ctx, *riderID)
	if err != nil {
		return errs.AsPersistence("get rider", err)
	}

	released, err := h.assigner.Release(finished, carrier, now)
	if err != nil || !released {
		return err
	}

	if err = riders.UpdateIfStatus(ctx, carrier, rider.Busy); err != nil {
		return errs.AsPersistence("update rider", err)
	}
	return nil
}

// transitionConflict re-reads an order whose conditional update lost a race and
// replays the request against the current state to report the precise failure.
func (h UpdateOrderStatusCommandHandler) transitionConflict(
	ctx context.Context,
	uow AssignmentUoW,
	cmd UpdateOrderStatusCommand,
	cause error,
) error {
	current, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return errs.AsPersistence("get order", err)
	}
	if err = current.ChangeStatus(cmd.RiderID(), cmd.NewStatus(), h.opts.now()); err != nil {
		return err
	}
	return cause
}
