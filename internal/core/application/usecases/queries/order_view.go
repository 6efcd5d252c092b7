package queries

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderView is the read model of an order returned by every query.
type OrderView struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	RiderID            *kernel.UUID
	LogisticsCompanyID *kernel.UUID
	Description        string
	PickupAddress      string
	DeliveryAddress    string
	Status             order.Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewOrderView copies the readable state of o.
func NewOrderView(o *order.Order) OrderView {
	return OrderView{
		ID:                 o.ID(),
		CustomerID:         o.CustomerID(),
		RiderID:            o.RiderID(),
		LogisticsCompanyID: o.LogisticsCompanyID(),
		Description:        o.Description(),
		PickupAddress:      o.PickupAddress().String(),
		DeliveryAddress:    o.DeliveryAddress().String(),
		Status:             o.Status(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}
}

func newOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}
