package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via one of the NewFetch...Query constructors",
)

// ListOrdersQuery selects orders by customer, rider, logistics company or status.
// Results come oldest first.
//
// Example:
//
//	query, err := queries.NewFetchOrdersByStatusQuery(order.Pending)
//	if err != nil {
//	    return err
//	}
//	pending, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	filter ports.OrderFilter

	guard guard.ConstructorGuard
}

// NewFetchAllOrdersQuery selects every order.
func NewFetchAllOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewFetchOrdersByStatusQuery selects the orders in status.
func NewFetchOrdersByStatusQuery(status order.Status) (ListOrdersQuery, error) {
	if err := status.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{filter: ports.OrderFilter{Status: &status}, guard: guard.NewConstructorGuard()}, nil
}

func NewFetchOrdersByCustomerQuery(customerID kernel.UUID) (ListOrdersQuery, error) {
	if customerID.IsZero() {
		return ListOrdersQuery{}, errs.NewValueIsRequiredError("customerID")
	}
	return ListOrdersQuery{filter: ports.OrderFilter{CustomerID: &customerID}, guard: guard.NewConstructorGuard()}, nil
}

func NewFetchOrdersByRiderQuery(riderID kernel.UUID) (ListOrdersQuery, error) {
	if riderID.IsZero() {
		return ListOrdersQuery{}, errs.NewValueIsRequiredError("riderID")
	}
	return ListOrdersQuery{filter: ports.OrderFilter{RiderID: &riderID}, guard: guard.NewConstructorGuard()}, nil
}

// NewFetchCompanyOrdersQuery selects the orders routed to companyID, optionally in one status.
func NewFetchCompanyOrdersQuery(companyID kernel.UUID, status *order.Status) (ListOrdersQuery, error) {
	var errCompany, errStatus error
	if companyID.IsZero() {
		errCompany = errs.NewValueIsRequiredError("logisticsCompanyID")
	}
	if status != nil {
		errStatus = status.Validate()
	}
	if err := errors.Join(errCompany, errStatus); err != nil {
		return ListOrdersQuery{}, err
	}

	filter := ports.OrderFilter{LogisticsCompanyID: &companyID}
	if status != nil {
		s := *status
		filter.Status = &s
	}
	return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}
