package telemetry

import (
	"context"
	"errors"
	"time"

	"logistics/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "logistics"

// OperationMetrics counts use case outcomes and background work.
type OperationMetrics struct {
	operations metric.Int64Counter
	duration   metric.Float64Histogram
	published  metric.Int64Counter
	released   metric.Int64Counter
}

func NewOperationMetrics(mp metric.MeterProvider) (*OperationMetrics, error) {
	meter := mp.Meter(meterName)

	operations, err := meter.Int64Counter("logistics.operations",
		metric.WithDescription("Use case invocations by operation and outcome"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("logistics.operation.duration",
		metric.WithDescription("Use case latency"), metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	published, err := meter.Int64Counter("logistics.outbox.published",
		metric.WithDescription("Order events relayed from the outbox"))
	if err != nil {
		return nil, err
	}
	released, err := meter.Int64Counter("logistics.riders.reconciled",
		metric.WithDescription("Busy riders released by reconciliation"))
	if err != nil {
		return nil, err
	}

	return &OperationMetrics{operations: operations, duration: duration, published: published, released: released}, nil
}

// Record adds one invocation of operation that started at started and ended with err.
func (m *OperationMetrics) Record(ctx context.Context, operation string, started time.Time, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.String("outcome", Outcome(err)),
	}
	if reason, ok := errs.ConflictReasonOf(err); ok {
		attrs = append(attrs, attribute.String("reason", string(reason)))
	}

	set := metric.WithAttributes(attrs...)
	m.operations.Add(ctx, 1, set)
	m.duration.Record(ctx, time.Since(started).Seconds(), set)
}

func (m *OperationMetrics) EventsPublished(ctx context.Context, n int) {
	m.published.Add(ctx, int64(n))
}

func (m *OperationMetrics) RidersReleased(ctx context.Context, n int) {
	m.released.Add(ctx, int64(n))
}

// Outcome names the error kind of err, "ok" for nil.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errs.IsValidation(err):
		return "validation"
	case errors.Is(err, errs.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, errs.ErrForbidden):
		return "forbidden"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrConflict):
		return "conflict"
	case errors.Is(err, errs.ErrPersistence):
		return "persistence"
	default:
		return "error"
	}
}
