package order

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// Event types recorded by the Order aggregate.
const (
	EventCreated       = "order.created"
	EventAccepted      = "order.accepted"
	EventStatusChanged = "order.status_changed"
)

// Event describes one lifecycle step of an order. It is serialized as JSON into the
// outbox and published as is.
type Event struct {
	ID                 kernel.UUID  `json:"id"`
	Type               string       `json:"type"`
	OrderID            kernel.UUID  `json:"orderId"`
	CustomerID         kernel.UUID  `json:"customerId"`
	RiderID            *kernel.UUID `json:"riderId,omitempty"`
	LogisticsCompanyID *kernel.UUID `json:"logisticsCompanyId,omitempty"`
	PreviousStatus     string       `json:"previousStatus,omitempty"`
	Status             string       `json:"status"`
	At                 time.Time    `json:"occurredAt"`
}

func (e Event) EventID() kernel.UUID {
	return e.ID
}

func (e Event) EventType() string {
	return e.Type
}

func (e Event) AggregateID() kernel.UUID {
	return e.OrderID
}

func (e Event) OccurredAt() time.Time {
	return e.At
}

func (o *Order) record(eventType string, previous Status) {
	event := Event{
		ID:                 kernel.NewUUID(),
		Type:               eventType,
		OrderID:            o.id,
		CustomerID:         o.customerID,
		RiderID:            o.RiderID(),
		LogisticsCompanyID: o.LogisticsCompanyID(),
		Status:             o.status.String(),
		At:                 o.updatedAt,
	}
	if previous != Unknown {
		event.PreviousStatus = previous.String()
	}
	o.events = append(o.events, event)
}
