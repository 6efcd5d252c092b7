package queries

import (
	"context"

	"logistics/internal/pkg/errs"
)

// GetCompanyOrderQueryHandler returns an order routed to the asking company. An order
// routed elsewhere, or nowhere, is reported as not found so companies cannot probe ids.
type GetCompanyOrderQueryHandler struct {
	reader OrderReader
	opts   handlerOptions
}

func NewGetCompanyOrderQueryHandler(reader OrderReader, opts ...HandlerOption) GetCompanyOrderQueryHandler {
	return GetCompanyOrderQueryHandler{reader: reader, opts: newHandlerOptions(opts)}
}

func (h GetCompanyOrderQueryHandler) Handle(ctx context.Context, query GetCompanyOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	ctx, cancel := h.opts.bound(ctx)
	defer cancel()

	found, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, asPersistence("get order", err)
	}
	if !found.IsRoutedTo(query.CompanyID()) {
		return OrderView{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	return NewOrderView(found), nil
}
