// Package commands contains the use cases that change state: the order lifecycle
// transitions, account sign-up and login, and the background outbox and rider repairs.
// Every command is built through its constructor and every handler runs inside one unit
// of work whose store calls share a bounded deadline.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	ThirdPartyRepoFactory interface {
		ThirdPartyRepository() ports.ThirdPartyRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW serves order creation and customer cancellation. Creation checks the
	// routed logistics company exists.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ThirdPartyRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AssignmentUoW covers commands that move an order and its rider together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orders := uow.OrderRepository()
	//   riders := uow.RiderRepository()
	//   // ... conditional updates of both
	//
	//   err = uow.Commit(ctx)
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		RiderRepoFactory
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// RiderUoW serves rider-only changes.
	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	RiderUoWFactory interface {
		Create() RiderUoW
	}

	// AccountUoW serves sign-up and login of every role.
	AccountUoW interface {
		TxManager
		CustomerRepoFactory
		RiderRepoFactory
		ThirdPartyRepoFactory
	}

	AccountUoWFactory interface {
		Create() AccountUoW
	}

	// OutboxUoW serves the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// Function adapters turning a closure, usually over ports.UnitOfWorkFactory, into the
// narrowed factories.
//
//	orders := commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return factory.Create() })
type (
	OrderUoWFactoryFunc      func() OrderUoW
	AssignmentUoWFactoryFunc func() AssignmentUoW
	RiderUoWFactoryFunc      func() RiderUoW
	AccountUoWFactoryFunc    func() AccountUoW
	OutboxUoWFactoryFunc     func() OutboxUoW
)

func (f OrderUoWFactoryFunc) Create() OrderUoW           { return f() }
func (f AssignmentUoWFactoryFunc) Create() AssignmentUoW { return f() }
func (f RiderUoWFactoryFunc) Create() RiderUoW           { return f() }
func (f AccountUoWFactoryFunc) Create() AccountUoW       { return f() }
func (f OutboxUoWFactoryFunc) Create() OutboxUoW         { return f() }
