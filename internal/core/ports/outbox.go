package ports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event waiting to be published.
type OutboxMessage struct {
	ID          kernel.UUID
	EventType   string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
	PublishedAt *time.Time
}

// NewOutboxMessage serializes event as JSON for the outbox.
func NewOutboxMessage(event kernel.DomainEvent) (OutboxMessage, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxMessage{}, fmt.Errorf("encode %s event: %w", event.EventType(), err)
	}
	return OutboxMessage{
		ID:          event.EventID(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		OccurredAt:  event.OccurredAt().UTC(),
	}, nil
}

// CollectOutboxMessages serializes the pending events of every distinct event source
// among aggregates, in order. The sources are returned so the caller can clear their
// events once the messages are durable. Aggregates recording no events are skipped.
func CollectOutboxMessages(aggregates []any) ([]kernel.EventSource, []OutboxMessage, error) {
	var (
		sources  []kernel.EventSource
		messages []OutboxMessage
	)
	seen := make(map[kernel.EventSource]struct{}, len(aggregates))

	for _, aggregate := range aggregates {
		source, ok := aggregate.(kernel.EventSource)
		if !ok {
			continue
		}
		if _, dup := seen[source]; dup {
			continue
		}
		seen[source] = struct{}{}
		sources = append(sources, source)

		for _, event := range source.DomainEvents() {
			message, err := NewOutboxMessage(event)
			if err != nil {
				return nil, nil, err
			}
			messages = append(messages, message)
		}
	}
	return sources, messages, nil
}

// OutboxRepository stores events in the transaction that produced them.
type OutboxRepository interface {
	Add(ctx context.Context, messages ...OutboxMessage) error

	// FetchUnpublished returns at most limit unpublished messages, oldest first.
	// Concurrent relays inside their own transactions never receive the same row.
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, messages []OutboxMessage) error
}
