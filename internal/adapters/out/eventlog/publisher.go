// Package eventlog publishes outbox messages to the structured log. It stands in for
// the Kafka producer when no broker is configured.
package eventlog

import (
	"context"
	"encoding/json"
	"log/slog"

	"logistics/internal/core/ports"
)

type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{logger: logger.With("component", "eventlog")}
}

func (p *Publisher) Publish(ctx context.Context, messages []ports.OutboxMessage) error {
	for _, m := range messages {
		p.logger.InfoContext(ctx, "order event",
			"event_id", m.ID.String(),
			"event_type", m.EventType,
			"order_id", m.AggregateID.String(),
			"occurred_at", m.OccurredAt,
			"payload", json.RawMessage(m.Payload),
		)
	}
	return nil
}
