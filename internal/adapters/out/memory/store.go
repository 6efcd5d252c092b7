// Package memory keeps the logistics state in process memory behind the same unit of
// work contract as the PostgreSQL adapter. Transactions are serialized: a unit of work
// holds the store's single write slot from Begin until Commit or Rollback, stages its
// writes privately and applies them atomically on Commit. Reads outside a transaction
// see committed state only.
package memory

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/domain/model/thirdparty"
	"logistics/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback on a unit of work that was not begun.
var ErrNoTransaction = errors.New("no active transaction")

// Store holds committed state. Aggregates are stored as private copies and handed out
// as fresh copies, so callers never share mutable state with the store.
type Store struct {
	slot chan struct{}

	mu           sync.RWMutex
	orders       map[kernel.UUID]*order.Order
	riders       map[kernel.UUID]*rider.Rider
	customers    map[kernel.UUID]*customer.Customer
	thirdParties map[kernel.UUID]*thirdparty.ThirdParty
	outbox       []ports.OutboxMessage
}

func NewStore() *Store {
	return &Store{
		slot:         make(chan struct{}, 1),
		orders:       make(map[kernel.UUID]*order.Order),
		riders:       make(map[kernel.UUID]*rider.Rider),
		customers:    make(map[kernel.UUID]*customer.Customer),
		thirdParties: make(map[kernel.UUID]*thirdparty.ThirdParty),
	}
}

// changes are the writes staged by one transaction.
type changes struct {
	orders       map[kernel.UUID]*order.Order
	riders       map[kernel.UUID]*rider.Rider
	customers    map[kernel.UUID]*customer.Customer
	thirdParties map[kernel.UUID]*thirdparty.ThirdParty
	outbox       []ports.OutboxMessage
	published    map[kernel.UUID]time.Time
}

func newChanges() *changes {
	return &changes{
		orders:       make(map[kernel.UUID]*order.Order),
		riders:       make(map[kernel.UUID]*rider.Rider),
		customers:    make(map[kernel.UUID]*customer.Customer),
		thirdParties: make(map[kernel.UUID]*thirdparty.ThirdParty),
		published:    make(map[kernel.UUID]time.Time),
	}
}

func (s *Store) apply(c *changes) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, o := range c.orders {
		s.orders[id] = o
	}
	for id, r := range c.riders {
		s.riders[id] = r
	}
	for id, cu := range c.customers {
		s.customers[id] = cu
	}
	for id, tp := range c.thirdParties {
		s.thirdParties[id] = tp
	}
	s.outbox = append(s.outbox, c.outbox...)

	for i := range s.outbox {
		if at, ok := c.published[s.outbox[i].ID]; ok {
			published := at
			s.outbox[i].PublishedAt = &published
		}
	}
}

func idLess(a, b kernel.UUID) bool {
	x, y := a.Bytes(), b.Bytes()
	return bytes.Compare(x[:], y[:]) < 0
}

func cloneOrder(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(o.ID(), o.CustomerID(), o.RiderID(), o.LogisticsCompanyID(), o.Description(),
		o.PickupAddress(), o.DeliveryAddress(), o.Status(), o.CreatedAt(), o.UpdatedAt())
}

func cloneRider(r *rider.Rider) (*rider.Rider, error) {
	return rider.RestoreRider(r.ID(), r.Name(), r.Email(), r.Phone(), r.PasswordHash(), r.IsActive(), r.IsLicensed(),
		r.Status(), r.CurrentOrderID(), r.CurrentLocation(), r.CreatedAt(), r.UpdatedAt())
}
