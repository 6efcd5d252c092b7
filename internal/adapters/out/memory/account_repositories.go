package memory

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/thirdparty"
	"logistics/internal/pkg/errs"
)

// Customer and logistics company accounts never change after sign-up, so the stored
// aggregates are shared rather than copied.

func duplicateAccount() error {
	return errs.NewConflictError(errs.ReasonDuplicateAccount, "an account with this e-mail already exists")
}

// CustomerRepository implements ports.CustomerRepository over a Store.
type CustomerRepository struct {
	uow *UnitOfWork
}

func (r *CustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := alive(ctx, "add customer"); err != nil {
		return err
	}

	return r.uow.write(ctx, func(c *changes) error {
		for id, existing := range r.uow.allCustomers() {
			if id.IsEqual(aggregate.ID()) {
				return errs.NewPersistenceErrorWithCause("add customer", fmt.Errorf("customer %s already exists", id))
			}
			if existing.Email() == aggregate.Email() {
				return duplicateAccount()
			}
		}
		c.customers[aggregate.ID()] = aggregate
		return nil
	})
}

func (r *CustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := alive(ctx, "get customer"); err != nil {
		return nil, err
	}

	if c, ok := r.uow.allCustomers()[id]; ok {
		return c, nil
	}
	return nil, errs.NewObjectNotFoundError("customer", id.String())
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email kernel.Email) (*customer.Customer, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	if err := alive(ctx, "get customer"); err != nil {
		return nil, err
	}

	for _, c := range r.uow.allCustomers() {
		if c.Email() == email {
			return c, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("customer", email.String())
}

// ThirdPartyRepository implements ports.ThirdPartyRepository over a Store.
type ThirdPartyRepository struct {
	uow *UnitOfWork
}

func (r *ThirdPartyRepository) Add(ctx context.Context, aggregate *thirdparty.ThirdParty) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := alive(ctx, "add logistics company"); err != nil {
		return err
	}

	return r.uow.write(ctx, func(c *changes) error {
		for id, existing := range r.uow.allThirdParties() {
			if id.IsEqual(aggregate.ID()) {
				return errs.NewPersistenceErrorWithCause("add logistics company",
					fmt.Errorf("logistics company %s already exists", id))
			}
			if existing.ContactEmail() == aggregate.ContactEmail() {
				return duplicateAccount()
			}
		}
		c.thirdParties[aggregate.ID()] = aggregate
		return nil
	})
}

func (r *ThirdPartyRepository) Get(ctx context.Context, id kernel.UUID) (*thirdparty.ThirdParty, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := alive(ctx, "get logistics company"); err != nil {
		return nil, err
	}

	if tp, ok := r.uow.allThirdParties()[id]; ok {
		return tp, nil
	}
	return nil, errs.NewObjectNotFoundError("logistics company", id.String())
}

func (r *ThirdPartyRepository) GetByEmail(ctx context.Context, email kernel.Email) (*thirdparty.ThirdParty, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	if err := alive(ctx, "get logistics company"); err != nil {
		return nil, err
	}

	for _, tp := range r.uow.allThirdParties() {
		if tp.ContactEmail() == email {
			return tp, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("logistics company", email.String())
}
