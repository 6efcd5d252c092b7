package jobs

import (
	"fmt"
)

// JobManager starts and stops the background jobs together.
type JobManager struct {
	outboxRelayJob         *OutboxRelayJob
	riderReconciliationJob *RiderReconciliationJob
}

func NewJobManager(outboxRelayJob *OutboxRelayJob, riderReconciliationJob *RiderReconciliationJob) *JobManager {
	return &JobManager{
		outboxRelayJob:         outboxRelayJob,
		riderReconciliationJob: riderReconciliationJob,
	}
}

// StartAll returns an error if any job fails to start. Jobs already running are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.riderReconciliationJob.Start(); err != nil {
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start rider reconciliation job: %w", err)
	}

	return nil
}

// StopAll waits for running passes to finish.
func (jm *JobManager) StopAll() {
	jm.riderReconciliationJob.Stop()
	jm.outboxRelayJob.Stop()
}
