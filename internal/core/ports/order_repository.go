// Package ports defines the contracts between the logistics core and its adapters:
// repositories, the unit of work, credential handling and event publishing.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderFilter narrows Find and Count. Nil fields do not filter. Results are always
// ordered by creation time, oldest first, with the id breaking ties.
type OrderFilter struct {
	CustomerID         *kernel.UUID
	RiderID            *kernel.UUID
	LogisticsCompanyID *kernel.UUID
	Status             *order.Status
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. The order must be valid.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateIfStatus writes aggregate only if the stored order still has status expected.
	// It is a single conditional statement, not a read followed by a write: when another
	// writer got there first it returns ConflictError(StaleState) and changes nothing.
	// A missing order yields ObjectNotFoundError.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Find returns the matching orders. An empty result is not an error.
	Find(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// Count returns how many orders match filter.
	Count(ctx context.Context, filter OrderFilter) (int64, error)
}
