package queries

import (
	"context"
)

type CountOrdersQueryHandler struct {
	reader OrderReader
	opts   handlerOptions
}

func NewCountOrdersQueryHandler(reader OrderReader, opts ...HandlerOption) CountOrdersQueryHandler {
	return CountOrdersQueryHandler{reader: reader, opts: newHandlerOptions(opts)}
}

func (h CountOrdersQueryHandler) Handle(ctx context.Context, query CountOrdersQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	ctx, cancel := h.opts.bound(ctx)
	defer cancel()

	count, err := h.reader.Count(ctx, query.Filter())
	if err != nil {
		return 0, asPersistence("count orders", err)
	}
	return count, nil
}
