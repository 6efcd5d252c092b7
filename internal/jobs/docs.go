// Package jobs provides scheduled background tasks for the logistics service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field specs with seconds):
//
//  1. OutboxRelayJob publishes order events stored by the unit of work, draining the
//     outbox in batches.
//  2. RiderReconciliationJob releases Busy riders whose current order is missing,
//     finished, or held by another rider.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOutboxRelayJob(relayHandler, metrics, cfg.OutboxRelaySchedule, 0, logger),
//		jobs.NewRiderReconciliationJob(reconcileHandler, metrics, cfg.RiderReconcileSchedule, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// A tick is skipped while the previous pass of the same job is still running. Errors
// are logged and recorded in the operation metrics; the next tick retries.
package jobs
