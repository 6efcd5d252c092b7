package queries

import (
	"context"
)

// ListOrdersQueryHandler serves every order listing.
type ListOrdersQueryHandler struct {
	reader OrderReader
	opts   handlerOptions
}

func NewListOrdersQueryHandler(reader OrderReader, opts ...HandlerOption) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{reader: reader, opts: newHandlerOptions(opts)}
}

// Handle returns the matching orders, oldest first. No match yields an empty slice.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := h.opts.bound(ctx)
	defer cancel()

	orders, err := h.reader.Find(ctx, query.Filter())
	if err != nil {
		return nil, asPersistence("find orders", err)
	}

	return newOrderViews(orders), nil
}
