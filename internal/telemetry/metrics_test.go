package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"logistics/internal/pkg/errs"
	"logistics/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestOutcome(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"nil":         {nil, "ok"},
		"validation":  {errs.NewValueIsRequiredError("x"), "validation"},
		"auth":        {errs.NewUnauthenticatedError("x"), "unauthenticated"},
		"forbidden":   {errs.NewForbiddenError("x"), "forbidden"},
		"not found":   {errs.NewObjectNotFoundError("x", 1), "not_found"},
		"conflict":    {errs.NewConflictError(errs.ReasonRiderBusy, "x"), "conflict"},
		"persistence": {errs.NewPersistenceError("x"), "persistence"},
		"other":       {errors.New("boom"), "error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, telemetry.Outcome(tt.err))
		})
	}
}

func TestOperationMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := telemetry.NewOperationMetrics(provider)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.Record(ctx, "accept_order", time.Now(), nil)
	metrics.Record(ctx, "accept_order", time.Now(), errs.NewConflictError(errs.ReasonAlreadyInProgress, "taken"))
	metrics.EventsPublished(ctx, 3)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	counts := map[string]int64{}
	var published int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				switch m.Name {
				case "logistics.operations":
					outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
					counts[outcome.AsString()] += dp.Value
					if outcome.AsString() == "conflict" {
						reason, ok := dp.Attributes.Value(attribute.Key("reason"))
						assert.True(t, ok)
						assert.Equal(t, string(errs.ReasonAlreadyInProgress), reason.AsString())
					}
				case "logistics.outbox.published":
					published += dp.Value
				}
			}
		}
	}

	assert.Equal(t, map[string]int64{"ok": 1, "conflict": 1}, counts)
	assert.Equal(t, int64(3), published)
}
