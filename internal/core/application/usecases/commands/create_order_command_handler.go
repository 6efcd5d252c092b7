package commands

import (
	"context"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// CreateOrderCommandHandler stores a new Pending order without a rider.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created.Status() == order.Pending
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	opts       handlerOptions
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, opts ...HandlerOption) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		opts:       newHandlerOptions(opts),
	}
}

// Handle creates the order. A routed logistics company must exist (ObjectNotFoundError);
// store failures surface as PersistenceError and are not retried.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	if companyID := cmd.LogisticsCompanyID(); companyID != nil {
		if _, err := uow.ThirdPartyRepository().Get(ctx, *companyID); err != nil {
			return nil, errs.AsPersistence("get logistics company", err)
		}
	}

	created, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.Description(),
		cmd.PickupAddress(),
		cmd.DeliveryAddress(),
		cmd.LogisticsCompanyID(),
		h.opts.now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, errs.AsPersistence("add order", err)
	}

	if err = commit(ctx, uow); err != nil {
		return nil, err
	}

	return created, nil
}
