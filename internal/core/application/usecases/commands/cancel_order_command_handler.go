package commands

import (
	"context"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels a Pending order for the customer who placed it.
// The write is conditional on the order still being Pending, so a rider accepting at
// the same moment either wins (AlreadyInProgress here) or finds the order Cancelled.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	opts       handlerOptions
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, opts ...HandlerOption) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, opts: newHandlerOptions(opts)}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if err = target.CancelByCustomer(cmd.CustomerID(), h.opts.now()); err != nil {
		return nil, err
	}

	if err = orders.UpdateIfStatus(ctx, target, order.Pending); err != nil {
		if !isStale(err) {
			return nil, errs.AsPersistence("update order", err)
		}
		current, getErr := orders.Get(ctx, cmd.OrderID())
		if getErr != nil {
			return nil, errs.AsPersistence("get order", getErr)
		}
		if _, cancelErr := current.Status().Cancel(); cancelErr != nil {
			return nil, cancelErr
		}
		return nil, err
	}

	if err = commit(ctx, uow); err != nil {
		return nil, err
	}

	return target, nil
}
