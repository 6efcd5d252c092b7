package commands

import (
	"context"
	"time"

	"logistics/internal/pkg/errs"
)

// DefaultStoreTimeout bounds the store calls of one handler invocation.
const DefaultStoreTimeout = 5 * time.Second

// HandlerOption customizes the deadline and clock shared by the handlers.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	storeTimeout time.Duration
	now          func() time.Time
}

// WithStoreTimeout overrides DefaultStoreTimeout. Non-positive values are ignored.
func WithStoreTimeout(timeout time.Duration) HandlerOption {
	return func(o *handlerOptions) {
		if timeout > 0 {
			o.storeTimeout = timeout
		}
	}
}

// WithClock replaces time.Now, mostly in tests.
func WithClock(now func() time.Time) HandlerOption {
	return func(o *handlerOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func newHandlerOptions(opts []HandlerOption) handlerOptions {
	o := handlerOptions{storeTimeout: DefaultStoreTimeout, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o handlerOptions) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.storeTimeout)
}

// begin opens the transaction and reports failures as PersistenceError.
func begin(ctx context.Context, tx TxManager) error {
	return errs.AsPersistence("begin transaction", tx.Begin(ctx))
}

func commit(ctx context.Context, tx TxManager) error {
	return errs.AsPersistence("commit transaction", tx.Commit(ctx))
}
