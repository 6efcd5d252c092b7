package ports

import (
	"context"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/thirdparty"
)

// CustomerRepository stores customer accounts. Add reports a taken e-mail as
// ConflictError(DuplicateAccount); lookups report absence as ObjectNotFoundError.
type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
	GetByEmail(ctx context.Context, email kernel.Email) (*customer.Customer, error)
}

// ThirdPartyRepository stores logistics company accounts, keyed by contact e-mail.
type ThirdPartyRepository interface {
	Add(ctx context.Context, aggregate *thirdparty.ThirdParty) error
	Get(ctx context.Context, id kernel.UUID) (*thirdparty.ThirdParty, error)
	GetByEmail(ctx context.Context, email kernel.Email) (*thirdparty.ThirdParty, error)
}
