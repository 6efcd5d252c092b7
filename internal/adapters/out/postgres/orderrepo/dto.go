// Package orderrepo persists the order aggregate with GORM, mapping it to the orders table.
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Timestamps come from the aggregate, so GORM must not
// fill them in.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID  `gorm:"type:uuid;index"`
	RiderID            *uuid.UUID `gorm:"type:uuid;index"`
	LogisticsCompanyID *uuid.UUID `gorm:"type:uuid;index"`
	Description        string
	PickupAddress      string
	DeliveryAddress    string
	Status             string    `gorm:"index"`
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:                 o.ID().Bytes(),
		CustomerID:         o.CustomerID().Bytes(),
		RiderID:            optionalID(o.RiderID()),
		LogisticsCompanyID: optionalID(o.LogisticsCompanyID()),
		Description:        o.Description(),
		PickupAddress:      o.PickupAddress().String(),
		DeliveryAddress:    o.DeliveryAddress().String(),
		Status:             o.Status().String(),
		CreatedAt:          o.CreatedAt().UTC(),
		UpdatedAt:          o.UpdatedAt().UTC(),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, which rejects rows that break
// the status/rider invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	riderID, err := restoreID(dto.RiderID)
	if err != nil {
		return nil, err
	}
	companyID, err := restoreID(dto.LogisticsCompanyID)
	if err != nil {
		return nil, err
	}
	pickup, err := kernel.NewAddress("pickupAddress", dto.PickupAddress)
	if err != nil {
		return nil, err
	}
	delivery, err := kernel.NewAddress("deliveryAddress", dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customerID, riderID, companyID, dto.Description, pickup, delivery,
		status, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
