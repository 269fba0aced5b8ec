package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"haulage/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderBroadcastJob *OrderBroadcastJob
}

// NewJobManager creates a job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	broadcastHandler commands.BroadcastPendingOrdersCommandHandler,
	broadcastSchedule string,
	broadcastStaleAfter time.Duration,
	broadcastLimit int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderBroadcastJob: NewOrderBroadcastJob(
			broadcastHandler, broadcastSchedule, broadcastStaleAfter, broadcastLimit, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderBroadcastJob.Start(); err != nil {
		return fmt.Errorf("failed to start order broadcast job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderBroadcastJob.Stop()
}
