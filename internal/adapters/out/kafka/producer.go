// Package kafka publishes order lifecycle events from the outbox to a Kafka topic.
package kafka

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Headers set on every message besides the trace context.
const (
	HeaderEventType  = "event-type"
	HeaderEventID    = "event-id"
	HeaderOccurredAt = "occurred-at"
)

var tracer = otel.Tracer("logistics/kafka/producer")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer implements ports.EventPublisher. Messages are keyed by order id so the
// events of one order land on one partition in the order they occurred.
type Producer struct {
	writer messageWriter
	topic  string
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}

	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}, nil
}

// Publish writes the whole batch or fails. On failure some messages may already be
// on the topic; the outbox retries them, so consumers must tolerate duplicates.
func (p *Producer) Publish(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingBatchMessageCount(len(messages)),
		),
	)
	defer span.End()

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		msg := kafka.Message{
			Key:   []byte(m.AggregateID.String()),
			Value: m.Payload,
			Headers: []kafka.Header{
				{Key: HeaderEventType, Value: []byte(m.EventType)},
				{Key: HeaderEventID, Value: []byte(m.ID.String())},
				{Key: HeaderOccurredAt, Value: []byte(m.OccurredAt.UTC().Format(time.RFC3339Nano))},
			},
		}
		otel.GetTextMapPropagator().Inject(ctx, NewHeaderCarrier(&msg))
		batch = append(batch, msg)
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
