package access

import (
	"context"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
)

// Handler is any command or query handler.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Handlers are the use cases the gate fronts.
type Handlers struct {
	CreateOrder          Handler[commands.CreateOrderCommand, *order.Order]
	AcceptOrder          Handler[commands.AcceptOrderCommand, *order.Order]
	UpdateOrderStatus    Handler[commands.UpdateOrderStatusCommand, *order.Order]
	CancelOrder          Handler[commands.CancelOrderCommand, *order.Order]
	SetRiderAvailability Handler[commands.SetRiderAvailabilityCommand, *rider.Rider]
	ListOrders           Handler[queries.ListOrdersQuery, []queries.OrderView]
	CountOrders          Handler[queries.CountOrdersQuery, int64]
	GetCompanyOrder      Handler[queries.GetCompanyOrderQuery, queries.OrderView]
}

// Gate authorizes every order operation for a principal, then builds the command or
// query from the principal and the request input and runs it.
//
// Example:
//
//	gate := access.NewGate(handlers)
//	o, err := gate.AcceptOrder(ctx, principal, orderID)
//	if errors.Is(err, errs.ErrForbidden) {
//	    // not a rider; the engine was never called
//	}
type Gate struct {
	h Handlers
}

func NewGate(h Handlers) *Gate {
	return &Gate{h: h}
}

// OrderInput is what a customer supplies to place an order.
type OrderInput struct {
	OrderID            kernel.UUID
	Description        string
	PickupAddress      string
	DeliveryAddress    string
	LogisticsCompanyID *kernel.UUID
}

func run[In, Out any](ctx context.Context, p identity.Principal, rule Rule, build func() (In, error), h Handler[In, Out]) (Out, error) {
	var zero Out
	if err := rule.Check(p); err != nil {
		return zero, err
	}
	in, err := build()
	if err != nil {
		return zero, err
	}
	return h.Handle(ctx, in)
}

// CreateOrder places an order for the calling customer.
func (g *Gate) CreateOrder(ctx context.Context, p identity.Principal, in OrderInput) (*order.Order, error) {
	return run(ctx, p, RequireRole(identity.RoleCustomer), func() (commands.CreateOrderCommand, error) {
		return commands.NewCreateOrderCommand(
			in.OrderID, p.ID(), in.Description, in.PickupAddress, in.DeliveryAddress, in.LogisticsCompanyID,
		)
	}, g.h.CreateOrder)
}

// CancelOrder withdraws a Pending order of the calling customer.
func (g *Gate) CancelOrder(ctx context.Context, p identity.Principal, orderID kernel.UUID) (*order.Order, error) {
	return run(ctx, p, RequireRole(identity.RoleCustomer), func() (commands.CancelOrderCommand, error) {
		return commands.NewCancelOrderCommand(p.ID(), orderID)
	}, g.h.CancelOrder)
}

// AcceptOrder lets the calling rider claim a Pending order.
func (g *Gate) AcceptOrder(ctx context.Context, p identity.Principal, orderID kernel.UUID) (*order.Order, error) {
	return run(ctx, p, RequireRole(identity.RoleRider), func() (commands.AcceptOrderCommand, error) {
		return commands.NewAcceptOrderCommand(p.ID(), orderID)
	}, g.h.AcceptOrder)
}

// UpdateOrderStatus moves an order of the calling rider. Whether the rider is the one
// assigned is order state, so the engine decides it.
func (g *Gate) UpdateOrderStatus(
	ctx context.Context,
	p identity.Principal,
	orderID kernel.UUID,
	status order.Status,
) (*order.Order, error) {
	return run(ctx, p, RequireRole(identity.RoleRider), func() (commands.UpdateOrderStatusCommand, error) {
		return commands.NewUpdateOrderStatusCommand(p.ID(), orderID, status)
	}, g.h.UpdateOrderStatus)
}

func (g *Gate) SetRiderAvailability(
	ctx context.Context,
	p identity.Principal,
	riderID kernel.UUID,
	status rider.Status,
) (*rider.Rider, error) {
	return run(ctx, p, RequireOwner(identity.RoleRider, riderID), func() (commands.SetRiderAvailabilityCommand, error) {
		return commands.NewSetRiderAvailabilityCommand(riderID, status)
	}, g.h.SetRiderAvailability)
}

// FetchAll lists every order. Riders browse the board this way.
func (g *Gate) FetchAll(ctx context.Context, p identity.Principal) ([]queries.OrderView, error) {
	return run(ctx, p, RequireRole(identity.RoleRider), func() (queries.ListOrdersQuery, error) {
		return queries.NewFetchAllOrdersQuery(), nil
	}, g.h.ListOrders)
}

func (g *Gate) FetchByStatus(ctx context.Context, p identity.Principal, status order.Status) ([]queries.OrderView, error) {
	return run(ctx, p, RequireRole(identity.RoleRider), func() (queries.ListOrdersQuery, error) {
		return queries.NewFetchOrdersByStatusQuery(status)
	}, g.h.ListOrders)
}

// Count counts all orders, or those in status when it is not nil.
func (g *Gate) Count(ctx context.Context, p identity.Principal, status *order.Status) (int64, error) {
	return run(ctx, p, RequireRole(identity.RoleRider), func() (queries.CountOrdersQuery, error) {
		return queries.NewCountOrdersQuery(status)
	}, g.h.CountOrders)
}

// FetchByCustomer lists the orders of customerID, who must be the caller.
func (g *Gate) FetchByCustomer(ctx context.Context, p identity.Principal, customerID kernel.UUID) ([]queries.OrderView, error) {
	return run(ctx, p, RequireOwner(identity.RoleCustomer, customerID), func() (queries.ListOrdersQuery, error) {
		return queries.NewFetchOrdersByCustomerQuery(customerID)
	}, g.h.ListOrders)
}

// FetchByRider lists the orders bound to riderID, who must be the caller.
func (g *Gate) FetchByRider(ctx context.Context, p identity.Principal, riderID kernel.UUID) ([]queries.OrderView, error) {
	return run(ctx, p, RequireOwner(identity.RoleRider, riderID), func() (queries.ListOrdersQuery, error) {
		return queries.NewFetchOrdersByRiderQuery(riderID)
	}, g.h.ListOrders)
}

// FetchCompanyOrders lists the orders routed to the calling company.
func (g *Gate) FetchCompanyOrders(ctx context.Context, p identity.Principal, status *order.Status) ([]queries.OrderView, error) {
	return run(ctx, p, RequireRole(identity.RoleThirdParty), func() (queries.ListOrdersQuery, error) {
		return queries.NewFetchCompanyOrdersQuery(p.ID(), status)
	}, g.h.ListOrders)
}

func (g *Gate) FetchCompanyOrder(ctx context.Context, p identity.Principal, orderID kernel.UUID) (queries.OrderView, error) {
	return run(ctx, p, RequireRole(identity.RoleThirdParty), func() (queries.GetCompanyOrderQuery, error) {
		return queries.NewGetCompanyOrderQuery(p.ID(), orderID)
	}, g.h.GetCompanyOrder)
}
