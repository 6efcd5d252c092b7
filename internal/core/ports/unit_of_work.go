package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per use case invocation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after Begin
// share its transaction, and Commit also stores the domain events recorded by the
// aggregates written through them.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	RiderRepository() RiderRepository
	CustomerRepository() CustomerRepository
	ThirdPartyRepository() ThirdPartyRepository
	OutboxRepository() OutboxRepository
}
