package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/telemetry"
)

// DefaultRiderReconcileSchedule checks Busy riders once a minute.
const DefaultRiderReconcileSchedule = "0 * * * * *"

type RiderReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileRidersCommand) (int, error)
}

// RiderReconciliationJob frees Busy riders whose order no longer holds them.
type RiderReconciliationJob struct {
	runner
	handler RiderReconciler
	metrics *telemetry.OperationMetrics
}

func NewRiderReconciliationJob(
	handler RiderReconciler,
	metrics *telemetry.OperationMetrics,
	schedule string,
	logger *slog.Logger,
) *RiderReconciliationJob {
	if schedule == "" {
		schedule = DefaultRiderReconcileSchedule
	}
	return &RiderReconciliationJob{
		runner:  newRunner("rider_reconciliation_job", schedule, logger),
		handler: handler,
		metrics: metrics,
	}
}

func (j *RiderReconciliationJob) Start() error {
	return j.start(j.Run)
}

func (j *RiderReconciliationJob) Stop() {
	j.stop()
}

func (j *RiderReconciliationJob) Run(ctx context.Context) {
	started := time.Now()
	released, err := j.handler.Handle(ctx, commands.NewReconcileRidersCommand())
	j.metrics.Record(ctx, "reconcile_riders", started, err)
	if err != nil {
		j.logger.ErrorContext(ctx, "rider reconciliation failed", "error", err)
		return
	}

	if released > 0 {
		j.metrics.RidersReleased(ctx, released)
		j.logger.WarnContext(ctx, "released stale busy riders", "released", released)
	}
}
