package memory

import (
	"context"
	"fmt"
	"sort"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	uow *UnitOfWork
}

// NewOrderReader returns a repository that reads committed orders outside any unit of work.
func NewOrderReader(store *Store) *OrderRepository {
	return &OrderRepository{uow: &UnitOfWork{store: store}}
}

func alive(ctx context.Context, operation string) error {
	if err := ctx.Err(); err != nil {
		return errs.NewPersistenceErrorWithCause(operation, err)
	}
	return nil
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := alive(ctx, "add order"); err != nil {
		return err
	}

	stored, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}

	return r.uow.write(ctx, func(c *changes) error {
		if _, exists := r.uow.order(aggregate.ID()); exists {
			return errs.NewPersistenceErrorWithCause("add order", fmt.Errorf("order %s already exists", aggregate.ID()))
		}
		c.orders[aggregate.ID()] = stored
		r.uow.track(aggregate)
		return nil
	})
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := alive(ctx, "get order"); err != nil {
		return nil, err
	}

	stored, ok := r.uow.order(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(stored)
}

// UpdateIfStatus compares and writes under the transaction's exclusive slot, so no other
// writer can move the order in between.
func (r *OrderRepository) UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := alive(ctx, "update order"); err != nil {
		return err
	}

	stored, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}

	return r.uow.write(ctx, func(c *changes) error {
		current, ok := r.uow.order(aggregate.ID())
		if !ok {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		if current.Status() != expected {
			return errs.NewConflictError(errs.ReasonStaleState,
				fmt.Sprintf("order %s is no longer %s", aggregate.ID(), expected))
		}
		c.orders[aggregate.ID()] = stored
		r.uow.track(aggregate)
		return nil
	})
}

// Find returns copies of the matching orders, oldest first.
func (r *OrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	if err := alive(ctx, "find orders"); err != nil {
		return nil, err
	}

	matched := r.match(filter)
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().Before(b.CreatedAt())
		}
		return idLess(a.ID(), b.ID())
	})

	orders := make([]*order.Order, 0, len(matched))
	for _, stored := range matched {
		o, err := cloneOrder(stored)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) Count(ctx context.Context, filter ports.OrderFilter) (int64, error) {
	if err := alive(ctx, "count orders"); err != nil {
		return 0, err
	}
	return int64(len(r.match(filter))), nil
}

func (r *OrderRepository) match(filter ports.OrderFilter) []*order.Order {
	var matched []*order.Order
	for _, o := range r.uow.allOrders() {
		if matches(o, filter) {
			matched = append(matched, o)
		}
	}
	return matched
}

func matches(o *order.Order, filter ports.OrderFilter) bool {
	if filter.CustomerID != nil && !o.CustomerID().IsEqual(*filter.CustomerID) {
		return false
	}
	if filter.RiderID != nil && !sameID(o.RiderID(), *filter.RiderID) {
		return false
	}
	if filter.LogisticsCompanyID != nil && !sameID(o.LogisticsCompanyID(), *filter.LogisticsCompanyID) {
		return false
	}
	if filter.Status != nil && o.Status() != *filter.Status {
		return false
	}
	return true
}

func sameID(id *kernel.UUID, want kernel.UUID) bool {
	return id != nil && id.IsEqual(want)
}
