package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

type writerMock struct {
	mock.Mock
}

func (m *writerMock) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *writerMock) Close() error {
	return m.Called().Error(0)
}

func outboxMessage(orderID kernel.UUID, eventType string, at time.Time) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:          kernel.NewUUID(),
		EventType:   eventType,
		AggregateID: orderID,
		Payload:     []byte(`{"orderId":"` + orderID.String() + `"}`),
		OccurredAt:  at,
	}
}

func TestProducer_Publish_KeysByOrderAndPropagatesTrace(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	orderID := kernel.NewUUID()
	at := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	batch := []ports.OutboxMessage{
		outboxMessage(orderID, "order.created", at),
		outboxMessage(orderID, "order.accepted", at.Add(time.Second)),
	}

	var written []kafka.Message
	writer := &writerMock{}
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	producer := &Producer{writer: writer, topic: "order.changed"}
	require.NoError(t, producer.Publish(context.Background(), batch))

	writer.AssertExpectations(t)
	require.Len(t, written, 2)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "send order.changed", spans[0].Name())
	assert.Equal(t, trace.SpanKindProducer, spans[0].SpanKind())

	for i, msg := range written {
		carrier := NewHeaderCarrier(&msg)
		assert.Equal(t, orderID.String(), string(msg.Key))
		assert.Equal(t, batch[i].Payload, msg.Value)
		assert.Equal(t, batch[i].EventType, carrier.Get(HeaderEventType))
		assert.Equal(t, batch[i].ID.String(), carrier.Get(HeaderEventID))

		remote := trace.SpanContextFromContext(
			otel.GetTextMapPropagator().Extract(context.Background(), carrier),
		)
		assert.Equal(t, spans[0].SpanContext().TraceID(), remote.TraceID())
	}
}

func TestProducer_Publish_ReturnsWriterError(t *testing.T) {
	writer := &writerMock{}
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	producer := &Producer{writer: writer, topic: "order.changed"}
	err := producer.Publish(context.Background(), []ports.OutboxMessage{
		outboxMessage(kernel.NewUUID(), "order.created", time.Now()),
	})

	assert.EqualError(t, err, "broker down")
	writer.AssertExpectations(t)
}

func TestProducer_Publish_EmptyBatchWritesNothing(t *testing.T) {
	writer := &writerMock{}
	producer := &Producer{writer: writer, topic: "order.changed"}

	require.NoError(t, producer.Publish(context.Background(), nil))
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestNewProducer_Validates(t *testing.T) {
	_, err := NewProducer(nil, "order.changed")
	assert.Error(t, err)

	_, err = NewProducer([]string{"localhost:9092"}, "")
	assert.Error(t, err)
}

func TestHeaderCarrier_SetOverwrites(t *testing.T) {
	msg := kafka.Message{}
	carrier := NewHeaderCarrier(&msg)

	carrier.Set("traceparent", "a")
	carrier.Set("traceparent", "b")

	assert.Equal(t, "b", carrier.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, carrier.Keys())
	assert.Empty(t, carrier.Get("missing"))
}
