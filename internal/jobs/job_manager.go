package jobs

import (
	"fmt"
	"log/slog"

	"picking/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderImportJob *OrderImportJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	importOrdersHandler commands.ImportOrdersCommandHandler,
	importSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderImportJob: NewOrderImportJob(importOrdersHandler, importSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderImportJob.Start(); err != nil {
		return fmt.Errorf("failed to start order import job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderImportJob.Stop()
}
