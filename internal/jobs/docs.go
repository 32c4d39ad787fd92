// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping over the order workflow.
//
// # Available Jobs
//
// 1. PaymentReminderJob - Runs every ten minutes to surface bank-transfer
// payments still awaiting a finance verdict
// 2. PendingReviewJob - Runs every hour to flag orders that have waited more
// than a day for a sales decision
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the read-side query handler
//	jobManager := jobs.NewJobManager(listOrdersHandler, logger)
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
// Both jobs are observers: they read role working sets and log findings.
// Query failures are logged and the tick is skipped; the next tick retries.
package jobs
