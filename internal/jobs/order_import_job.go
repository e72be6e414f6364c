package jobs

import (
	"context"
	"log/slog"

	"picking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderImportJob rescans the bulk-load directory on a schedule and ingests
// order files that appeared after startup. The import is idempotent, so a
// rescan never disturbs orders already stored or in progress.
type OrderImportJob struct {
	handler  commands.ImportOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderImportJob creates a new job for rescanning the order directory.
// The schedule uses the standard 5-field cron syntax (or @every descriptors).
func NewOrderImportJob(
	handler commands.ImportOrdersCommandHandler, schedule string, logger *slog.Logger,
) *OrderImportJob {
	return &OrderImportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "order_import_job"),
	}
}

// Start begins the periodic rescan.
func (j *OrderImportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewImportOrdersCommand()

		imported, importErr := j.handler.Handle(ctx, cmd)
		if importErr != nil {
			j.logger.ErrorContext(ctx, "Order import job failed", "error", importErr)
			return
		}
		if imported > 0 {
			j.logger.InfoContext(ctx, "Order import job ingested new orders", "count", imported)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order import job started", "schedule", j.schedule)
	return nil
}

// Stop stops the rescan job.
func (j *OrderImportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order import job stopped")
}
