package memory

import (
	"context"
	"fmt"
	"sort"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"
)

// RiderRepository implements ports.RiderRepository over a Store.
type RiderRepository struct {
	uow *UnitOfWork
}

func (r *RiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := alive(ctx, "add rider"); err != nil {
		return err
	}

	stored, err := cloneRider(aggregate)
	if err != nil {
		return err
	}

	return r.uow.write(ctx, func(c *changes) error {
		for id, existing := range r.uow.allRiders() {
			if id.IsEqual(aggregate.ID()) {
				return errs.NewPersistenceErrorWithCause("add rider", fmt.Errorf("rider %s already exists", id))
			}
			if existing.Email() == aggregate.Email() {
				return errs.NewConflictError(errs.ReasonDuplicateAccount, "an account with this e-mail already exists")
			}
		}
		c.riders[aggregate.ID()] = stored
		r.uow.track(aggregate)
		return nil
	})
}

func (r *RiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := alive(ctx, "get rider"); err != nil {
		return nil, err
	}

	stored, ok := r.uow.rider(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("rider", id.String())
	}
	return cloneRider(stored)
}

func (r *RiderRepository) GetByEmail(ctx context.Context, email kernel.Email) (*rider.Rider, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	if err := alive(ctx, "get rider"); err != nil {
		return nil, err
	}

	for _, stored := range r.uow.allRiders() {
		if stored.Email() == email {
			return cloneRider(stored)
		}
	}
	return nil, errs.NewObjectNotFoundError("rider", email.String())
}

func (r *RiderRepository) UpdateIfStatus(ctx context.Context, aggregate *rider.Rider, expected rider.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := alive(ctx, "update rider"); err != nil {
		return err
	}

	stored, err := cloneRider(aggregate)
	if err != nil {
		return err
	}

	return r.uow.write(ctx, func(c *changes) error {
		current, ok := r.uow.rider(aggregate.ID())
		if !ok {
			return errs.NewObjectNotFoundError("rider", aggregate.ID().String())
		}
		if current.Status() != expected {
			return errs.NewConflictError(errs.ReasonStaleState,
				fmt.Sprintf("rider %s is no longer %s", aggregate.ID(), expected))
		}
		c.riders[aggregate.ID()] = stored
		r.uow.track(aggregate)
		return nil
	})
}

// FindBusy returns copies of every Busy rider, least recently updated first.
func (r *RiderRepository) FindBusy(ctx context.Context) ([]*rider.Rider, error) {
	if err := alive(ctx, "find busy riders"); err != nil {
		return nil, err
	}

	var busy []*rider.Rider
	for _, stored := range r.uow.allRiders() {
		if stored.Status() == rider.Busy {
			busy = append(busy, stored)
		}
	}
	sort.Slice(busy, func(i, j int) bool {
		a, b := busy[i], busy[j]
		if !a.UpdatedAt().Equal(b.UpdatedAt()) {
			return a.UpdatedAt().Before(b.UpdatedAt())
		}
		return idLess(a.ID(), b.ID())
	})

	riders := make([]*rider.Rider, 0, len(busy))
	for _, stored := range busy {
		rd, err := cloneRider(stored)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rd)
	}
	return riders, nil
}
