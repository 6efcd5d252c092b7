package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a use case. The unit of work
// collects the events of tracked aggregates and stores them in the outbox on commit.
type DomainEvent interface {
	EventID() UUID
	EventType() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that record domain events.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
