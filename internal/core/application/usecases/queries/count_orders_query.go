package queries

import (
	"errors"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/guard"
)

var ErrCountOrdersQueryIsNotConstructed = errors.New(
	"CountOrdersQuery must be created via NewCountOrdersQuery constructor",
)

// CountOrdersQuery counts all orders, or those in one status.
type CountOrdersQuery struct {
	filter ports.OrderFilter

	guard guard.ConstructorGuard
}

func NewCountOrdersQuery(status *order.Status) (CountOrdersQuery, error) {
	q := CountOrdersQuery{guard: guard.NewConstructorGuard()}
	if status != nil {
		if err := status.Validate(); err != nil {
			return CountOrdersQuery{}, err
		}
		s := *status
		q.filter.Status = &s
	}
	return q, nil
}

func (q CountOrdersQuery) Validate() error {
	return q.guard.Validate(ErrCountOrdersQueryIsNotConstructed)
}

func (q CountOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}
