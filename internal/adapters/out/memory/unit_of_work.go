package memory

import (
	"context"
	"sync"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/domain/model/thirdparty"
	"logistics/internal/core/ports"
)

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is one serialized transaction against a Store. Repository writes made
// without Begin are committed immediately, one at a time.
type UnitOfWork struct {
	store   *Store
	staged  *changes
	tracked []any
}

// Begin waits for the store's write slot. It returns early with the context error when
// ctx ends first. Calling it again on an open unit of work is a no-op.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.staged != nil {
		return nil
	}

	select {
	case u.store.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	u.staged = newChanges()
	return nil
}

// Commit turns the events of the tracked aggregates into outbox messages and applies
// every staged write at once.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.staged == nil {
		return ErrNoTransaction
	}

	sources, messages, err := ports.CollectOutboxMessages(u.tracked)
	if err != nil {
		_ = u.Rollback(ctx)
		return err
	}

	u.staged.outbox = append(u.staged.outbox, messages...)
	u.store.apply(u.staged)
	u.release()

	for _, source := range sources {
		source.ClearDomainEvents()
	}
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.staged == nil {
		return ErrNoTransaction
	}
	u.release()
	return nil
}

func (u *UnitOfWork) release() {
	u.staged = nil
	u.tracked = nil
	<-u.store.slot
}

// write runs fn against the open transaction, or inside a transaction of its own.
func (u *UnitOfWork) write(ctx context.Context, fn func(*changes) error) error {
	if u.staged != nil {
		return fn(u.staged)
	}

	if err := u.Begin(ctx); err != nil {
		return err
	}
	if err := fn(u.staged); err != nil {
		_ = u.Rollback(ctx)
		return err
	}
	return u.Commit(ctx)
}

func (u *UnitOfWork) track(aggregate any) {
	u.tracked = append(u.tracked, aggregate)
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: u}
}

func (u *UnitOfWork) RiderRepository() ports.RiderRepository {
	return &RiderRepository{uow: u}
}

func (u *UnitOfWork) CustomerRepository() ports.CustomerRepository {
	return &CustomerRepository{uow: u}
}

func (u *UnitOfWork) ThirdPartyRepository() ports.ThirdPartyRepository {
	return &ThirdPartyRepository{uow: u}
}

func (u *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &OutboxRepository{uow: u}
}

// Lookups see the transaction's own staged writes first, then committed state.

func snapshot[T any](mu *sync.RWMutex, committed, staged map[kernel.UUID]T) map[kernel.UUID]T {
	mu.RLock()
	all := make(map[kernel.UUID]T, len(committed)+len(staged))
	for id, v := range committed {
		all[id] = v
	}
	mu.RUnlock()

	for id, v := range staged {
		all[id] = v
	}
	return all
}

func lookup[T any](mu *sync.RWMutex, committed, staged map[kernel.UUID]T, id kernel.UUID) (T, bool) {
	if v, ok := staged[id]; ok {
		return v, true
	}
	mu.RLock()
	defer mu.RUnlock()
	v, ok := committed[id]
	return v, ok
}

// stagedChanges returns an empty set outside a transaction, so lookups fall through
// to committed state.
func (u *UnitOfWork) stagedChanges() *changes {
	if u.staged != nil {
		return u.staged
	}
	return &changes{}
}

func (u *UnitOfWork) order(id kernel.UUID) (*order.Order, bool) {
	return lookup(&u.store.mu, u.store.orders, u.stagedChanges().orders, id)
}

func (u *UnitOfWork) rider(id kernel.UUID) (*rider.Rider, bool) {
	return lookup(&u.store.mu, u.store.riders, u.stagedChanges().riders, id)
}

func (u *UnitOfWork) allOrders() map[kernel.UUID]*order.Order {
	return snapshot(&u.store.mu, u.store.orders, u.stagedChanges().orders)
}

func (u *UnitOfWork) allRiders() map[kernel.UUID]*rider.Rider {
	return snapshot(&u.store.mu, u.store.riders, u.stagedChanges().riders)
}

func (u *UnitOfWork) allCustomers() map[kernel.UUID]*customer.Customer {
	return snapshot(&u.store.mu, u.store.customers, u.stagedChanges().customers)
}

func (u *UnitOfWork) allThirdParties() map[kernel.UUID]*thirdparty.ThirdParty {
	return snapshot(&u.store.mu, u.store.thirdParties, u.stagedChanges().thirdParties)
}
