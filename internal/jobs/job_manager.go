package jobs

import (
	"fmt"
	"log/slog"

	"ferremas/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	paymentReminderJob *PaymentReminderJob
	pendingReviewJob   *PendingReviewJob
}

// NewJobManager creates a new job manager with all required jobs.
// Both jobs observe the read side only; they never mutate orders.
func NewJobManager(
	listOrdersHandler queries.ListOrdersByRoleViewQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		paymentReminderJob: NewPaymentReminderJob(listOrdersHandler, logger),
		pendingReviewJob:   NewPendingReviewJob(listOrdersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment reminder job: %w", err)
	}

	if err := jm.pendingReviewJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.paymentReminderJob.Stop()
		return fmt.Errorf("failed to start pending review job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingReviewJob.Stop()
	jm.paymentReminderJob.Stop()
}
