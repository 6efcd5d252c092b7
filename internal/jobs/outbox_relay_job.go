package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/telemetry"
)

// DefaultOutboxRelaySchedule relays stored events every two seconds.
const DefaultOutboxRelaySchedule = "*/2 * * * * *"

type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes stored order events in batches. A full batch is followed by
// another pass in the same tick, so a backlog drains without waiting for the schedule.
type OutboxRelayJob struct {
	runner
	handler   OutboxRelayer
	metrics   *telemetry.OperationMetrics
	batchSize int
}

func NewOutboxRelayJob(
	handler OutboxRelayer,
	metrics *telemetry.OperationMetrics,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultRelayBatchSize
	}
	return &OutboxRelayJob{
		runner:    newRunner("outbox_relay_job", schedule, logger),
		handler:   handler,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

func (j *OutboxRelayJob) Start() error {
	return j.start(j.Run)
}

func (j *OutboxRelayJob) Stop() {
	j.stop()
}

// Run relays until the outbox holds less than a batch, the context ends, or a pass fails.
func (j *OutboxRelayJob) Run(ctx context.Context) {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "invalid relay batch size", "error", err)
		return
	}

	for ctx.Err() == nil {
		started := time.Now()
		published, err := j.handler.Handle(ctx, cmd)
		j.metrics.Record(ctx, "relay_outbox", started, err)
		if err != nil {
			j.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
			return
		}

		if published > 0 {
			j.metrics.EventsPublished(ctx, published)
			j.logger.DebugContext(ctx, "outbox relayed", "published", published)
		}
		if published < j.batchSize {
			return
		}
	}
}
