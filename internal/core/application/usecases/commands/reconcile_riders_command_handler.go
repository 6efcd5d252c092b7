package commands

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// ReconcileRidersCommandHandler frees every Busy rider whose current order is missing,
// no longer InProgress, or assigned to someone else. A rider that changed between the
// scan and the write is skipped and revisited on the next run.
type ReconcileRidersCommandHandler struct {
	uowFactory AssignmentUoWFactory
	assigner   services.OrderAssigner
	opts       handlerOptions
}

func NewReconcileRidersCommandHandler(uowFactory AssignmentUoWFactory, opts ...HandlerOption) ReconcileRidersCommandHandler {
	return ReconcileRidersCommandHandler{
		uowFactory: uowFactory,
		assigner:   services.NewOrderAssigner(),
		opts:       newHandlerOptions(opts),
	}
}

// Handle returns the number of riders released.
func (h ReconcileRidersCommandHandler) Handle(ctx context.Context, cmd ReconcileRidersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ctx, cancel := h.opts.bound(ctx)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := begin(ctx, uow); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	riders := uow.RiderRepository()

	busy, err := riders.FindBusy(ctx)
	if err != nil {
		return 0, errs.AsPersistence("find busy riders", err)
	}

	released := 0
	for _, r := range busy {
		current, err := h.currentOrder(ctx, orders.Get, r)
		if err != nil {
			return 0, err
		}
		if h.assigner.Holds(current, r) {
			continue
		}
		if !r.ReleaseStale(h.opts.now()) {
			continue
		}

		if err = riders.UpdateIfStatus(ctx, r, rider.Busy); err != nil {
			if isStale(err) {
				continue
			}
			return 0, errs.AsPersistence("update rider", err)
		}
		released++
	}

	if released == 0 {
		return 0, nil
	}

	if err = commit(ctx, uow); err != nil {
		return 0, err
	}

	return released, nil
}

// currentOrder loads the order r claims to carry. A missing order yields nil.
func (ReconcileRidersCommandHandler) currentOrder(
	ctx context.Context,
	get func(context.Context, kernel.UUID) (*order.Order, error),
	r *rider.Rider,
) (*order.Order, error) {
	id := r.CurrentOrderID()
	if id == nil {
		return nil, nil
	}
	o, err := get(ctx, *id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.AsPersistence("get order", err)
	}
	return o, nil
}
