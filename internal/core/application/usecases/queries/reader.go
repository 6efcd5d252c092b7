// Package queries contains the read-only use cases. They never change state and read
// outside any unit of work; an empty result is never an error.
package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// DefaultStoreTimeout bounds the store calls of one query.
const DefaultStoreTimeout = 5 * time.Second

// OrderReader is the read side of the order store.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error)
	Count(ctx context.Context, filter ports.OrderFilter) (int64, error)
}

// HandlerOption customizes a query handler.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	storeTimeout time.Duration
}

// WithStoreTimeout overrides DefaultStoreTimeout. Non-positive values are ignored.
func WithStoreTimeout(timeout time.Duration) HandlerOption {
	return func(o *handlerOptions) {
		if timeout > 0 {
			o.storeTimeout = timeout
		}
	}
}

func newHandlerOptions(opts []HandlerOption) handlerOptions {
	o := handlerOptions{storeTimeout: DefaultStoreTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o handlerOptions) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.storeTimeout)
}

func asPersistence(operation string, err error) error {
	return errs.AsPersistence(operation, err)
}
