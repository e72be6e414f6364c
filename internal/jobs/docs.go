// Package jobs provides scheduled background tasks for the picking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order ingestion.
//
// # Available Jobs
//
// 1. OrderImportJob - Rescans the bulk-load directory on a schedule and
// ingests order files dropped after startup.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(importOrdersHandler, "@every 1m", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The import job logs failures and keeps its schedule; a directory scan that
// fails once is retried on the next tick. The import command is idempotent,
// so overlapping or repeated runs never duplicate orders.
package jobs
