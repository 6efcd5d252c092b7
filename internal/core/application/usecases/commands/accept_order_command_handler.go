package commands

import (
	"context"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// AcceptOrderCommandHandler binds a rider to a Pending order.
//
// Both writes go through conditional updates inside one unit of work: the order only
// if it is still Pending, the rider only if it is still Available. When a concurrent
// accept wins the order, the loser gets the precise conflict reason and nothing of its
// own attempt survives the rollback.
//
// Example:
//
//	handler := NewAcceptOrderCommandHandler(uowFactory)
//	cmd, _ := NewAcceptOrderCommand(riderID, orderID)
//	accepted, err := handler.Handle(ctx, cmd)
//	if reason, ok := errs.ConflictReasonOf(err); ok {
//	    log.Printf("order not accepted: %s", reason)
//	}
type AcceptOrderCommandHandler struct {
	uowFactory AssignmentUoWFactory
	assigner   services.OrderAssigner
	opts       handlerOptions
}

func NewAcceptOrderCommandHandler(uowFactory AssignmentUoWFactory, opts ...HandlerOption) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		assigner:   services.NewOrderAssigner(),
		opts:       newHandlerOptions(opts),
	}
}

// Handle checks, in order: the order exists, the order is Pending, the rider exists,
// the rider is active, the rider is Available. The first failing check decides the error.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
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
	riders := uow.RiderRepository()

	target, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, errs.AsPersistence("get order", err)
	}
	if err = target.Status().ValidateAccept(); err != nil {
		return nil, err
	}

	carrier, err := riders.Get(ctx, cmd.RiderID())
	if err != nil {
		return nil, errs.AsPersistence("get rider", err)
	}

	if err = h.assigner.Assign(target, carrier, h.opts.now()); err != nil {
		return nil, err
	}

	if err = orders.UpdateIfStatus(ctx, target, order.Pending); err != nil {
		if isStale(err) {
			return nil, h.orderConflict(ctx, orders, target, err)
		}
		return nil, errs.AsPersistence("update order", err)
	}

	if err = riders.UpdateIfStatus(ctx, carrier, rider.Available); err != nil {
		if isStale(err) {
			return nil, errs.NewConflictErrorWithCause(errs.ReasonRiderUnavailable, "rider is no longer available", err)
		}
		return nil, errs.AsPersistence("update rider", err)
	}

	if err = commit(ctx, uow); err != nil {
		return nil, err
	}

	return target, nil
}

// orderConflict re-reads an order whose conditional update lost a race and reports why
// it can no longer be accepted.
func (AcceptOrderCommandHandler) orderConflict(
	ctx context.Context,
	orders ports.OrderRepository,
	stale *order.Order,
	cause error,
) error {
	current, err := orders.Get(ctx, stale.ID())
	if err != nil {
		return errs.AsPersistence("get order", err)
	}
	if conflict := current.Status().ValidateAccept(); conflict != nil {
		return conflict
	}
	return cause
}

func isStale(err error) bool {
	reason, ok := errs.ConflictReasonOf(err)
	return ok && reason == errs.ReasonStaleState
}
