package jobs

import (
	"context"
	"log/slog"
	"time"

	"ferremas/internal/core/application/usecases/queries"
	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// pendingReviewThreshold is how long an order may wait for a sales decision
// before the job flags it.
const pendingReviewThreshold = 24 * time.Hour

// PendingReviewJob flags orders that have been waiting for a sales review
// for too long. Stock is not reserved while an order is pending, so a
// forgotten order quietly loses its items to other customers.
type PendingReviewJob struct {
	handler  queries.ListOrdersByRoleViewQueryHandler
	systemID kernel.UUID
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPendingReviewJob creates a job that scans pending orders every hour.
func NewPendingReviewJob(handler queries.ListOrdersByRoleViewQueryHandler, logger *slog.Logger) *PendingReviewJob {
	return &PendingReviewJob{
		handler:  handler,
		systemID: kernel.NewUUID(),
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pending_review_job"),
	}
}

// Start begins the pending review job.
func (j *PendingReviewJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		pending := order.StatusPending
		query, err := queries.NewListOrdersByRoleViewQuery(order.RoleSales, j.systemID, &pending)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending review job failed to build query", "error", err)
			return
		}

		summaries, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending review job failed", "error", err)
			return
		}

		cutoff := time.Now().UTC().Add(-pendingReviewThreshold)
		for _, summary := range summaries {
			if summary.CreatedAt.After(cutoff) {
				continue
			}
			j.logger.WarnContext(ctx, "Order stuck in pending review",
				"orderId", summary.ID, "customerId", summary.CustomerID,
				"createdAt", summary.CreatedAt, "totalAmount", summary.TotalAmount)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending review job started (running every hour)")
	return nil
}

// Stop stops the pending review job.
func (j *PendingReviewJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending review job stopped")
}
