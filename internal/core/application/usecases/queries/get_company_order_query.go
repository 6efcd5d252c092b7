package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetCompanyOrderQueryIsNotConstructed = errors.New(
	"GetCompanyOrderQuery must be created via NewGetCompanyOrderQuery constructor",
)

// GetCompanyOrderQuery reads one order as seen by a logistics company.
type GetCompanyOrderQuery struct {
	companyID kernel.UUID
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCompanyOrderQuery(companyID, orderID kernel.UUID) (GetCompanyOrderQuery, error) {
	var errCompany, errOrder error
	if companyID.IsZero() {
		errCompany = errs.NewValueIsRequiredError("logisticsCompanyID")
	}
	if orderID.IsZero() {
		errOrder = errs.NewValueIsRequiredError("orderID")
	}
	if err := errors.Join(errCompany, errOrder); err != nil {
		return GetCompanyOrderQuery{}, err
	}
	return GetCompanyOrderQuery{companyID: companyID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCompanyOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetCompanyOrderQueryIsNotConstructed)
}

func (q GetCompanyOrderQuery) CompanyID() kernel.UUID {
	return q.companyID
}

func (q GetCompanyOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}
