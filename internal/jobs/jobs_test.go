package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/jobs"
	"logistics/internal/pkg/errs"
	"logistics/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

type relayerMock struct {
	mock.Mock
}

func (m *relayerMock) Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type reconcilerMock struct {
	mock.Mock
}

func (m *reconcilerMock) Handle(ctx context.Context, cmd commands.ReconcileRidersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func metrics(t *testing.T) *telemetry.OperationMetrics {
	t.Helper()
	m, err := telemetry.NewOperationMetrics(noop.NewMeterProvider())
	require.NoError(t, err)
	return m
}

func TestOutboxRelayJob_DrainsFullBatches(t *testing.T) {
	relayer := &relayerMock{}
	mock.InOrder(
		relayer.On("Handle", mock.Anything, mock.Anything).Return(10, nil).Once(),
		relayer.On("Handle", mock.Anything, mock.Anything).Return(10, nil).Once(),
		relayer.On("Handle", mock.Anything, mock.Anything).Return(4, nil).Once(),
	)

	job := jobs.NewOutboxRelayJob(relayer, metrics(t), "", 10, discardLogger())
	job.Run(context.Background())

	relayer.AssertNumberOfCalls(t, "Handle", 3)
	cmd := relayer.Calls[0].Arguments.Get(1).(commands.RelayOutboxCommand)
	assert.Equal(t, 10, cmd.BatchSize())
}

func TestOutboxRelayJob_StopsOnError(t *testing.T) {
	relayer := &relayerMock{}
	relayer.On("Handle", mock.Anything, mock.Anything).
		Return(0, errs.NewPersistenceError("fetch outbox")).Once()

	job := jobs.NewOutboxRelayJob(relayer, metrics(t), "", 10, discardLogger())
	job.Run(context.Background())

	relayer.AssertNumberOfCalls(t, "Handle", 1)
}

func TestOutboxRelayJob_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	relayer := &relayerMock{}
	relayer.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(10, nil)

	job := jobs.NewOutboxRelayJob(relayer, metrics(t), "", 10, discardLogger())
	job.Run(ctx)

	relayer.AssertNumberOfCalls(t, "Handle", 1)
}

func TestRiderReconciliationJob_Run(t *testing.T) {
	tests := map[string]struct {
		released int
		err      error
	}{
		"nothing to release": {released: 0},
		"released":           {released: 2},
		"failed":             {err: errors.New("boom")},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			reconciler := &reconcilerMock{}
			reconciler.On("Handle", mock.Anything, mock.Anything).Return(tt.released, tt.err).Once()

			job := jobs.NewRiderReconciliationJob(reconciler, metrics(t), "", discardLogger())
			job.Run(context.Background())

			reconciler.AssertExpectations(t)
		})
	}
}

func TestJobManager_StartAllRejectsBadSchedule(t *testing.T) {
	relay := jobs.NewOutboxRelayJob(&relayerMock{}, metrics(t), "@every 1h", 10, discardLogger())
	reconcile := jobs.NewRiderReconciliationJob(&reconcilerMock{}, metrics(t), "not a schedule", discardLogger())

	manager := jobs.NewJobManager(relay, reconcile)
	err := manager.StartAll()

	assert.ErrorContains(t, err, "rider reconciliation job")
}

func TestJobManager_StartAndStop(t *testing.T) {
	relay := jobs.NewOutboxRelayJob(&relayerMock{}, metrics(t), "@every 1h", 10, discardLogger())
	reconcile := jobs.NewRiderReconciliationJob(&reconcilerMock{}, metrics(t), "@every 1h", discardLogger())

	manager := jobs.NewJobManager(relay, reconcile)
	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
