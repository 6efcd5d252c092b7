package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider. A second rider with the same e-mail yields
	// ConflictError(DuplicateAccount).
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Get returns the rider or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetByEmail returns the rider or an ObjectNotFoundError.
	GetByEmail(ctx context.Context, email kernel.Email) (*rider.Rider, error)

	// UpdateIfStatus writes aggregate only if the stored rider still has status expected,
	// otherwise ConflictError(StaleState).
	UpdateIfStatus(ctx context.Context, aggregate *rider.Rider, expected rider.Status) error

	// FindBusy returns every Busy rider.
	FindBusy(ctx context.Context) ([]*rider.Rider, error)
}
