package jobs

import (
	"context"
	"log/slog"

	"ferremas/internal/core/application/usecases/queries"
	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// awaitingConfirmation is the wire name of the payment state finance still
// has to act on.
var awaitingConfirmation = order.PaymentAwaiting.String()

// PaymentReminderJob periodically surfaces bank-transfer orders whose proof
// still awaits a finance verdict, so they do not sit unnoticed in the queue.
type PaymentReminderJob struct {
	handler  queries.ListOrdersByRoleViewQueryHandler
	systemID kernel.UUID
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPaymentReminderJob creates a job that scans the finance working set
// every ten minutes.
func NewPaymentReminderJob(handler queries.ListOrdersByRoleViewQueryHandler, logger *slog.Logger) *PaymentReminderJob {
	return &PaymentReminderJob{
		handler:  handler,
		systemID: kernel.NewUUID(),
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "payment_reminder_job"),
	}
}

// Start begins the payment reminder job.
func (j *PaymentReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 */10 * * * *", func() {
		ctx := context.Background()

		query, err := queries.NewListOrdersByRoleViewQuery(order.RoleFinance, j.systemID, nil)
		if err != nil {
			j.logger.ErrorContext(ctx, "Payment reminder job failed to build query", "error", err)
			return
		}

		summaries, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Payment reminder job failed", "error", err)
			return
		}

		pending := 0
		for _, summary := range summaries {
			if summary.PaymentState != awaitingConfirmation {
				continue
			}
			pending++
			j.logger.InfoContext(ctx, "Payment awaiting finance confirmation",
				"orderId", summary.ID, "totalAmount", summary.TotalAmount, "createdAt", summary.CreatedAt)
		}
		if pending > 0 {
			j.logger.InfoContext(ctx, "Payment review backlog", "count", pending)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reminder job started (running every ten minutes)")
	return nil
}

// Stop stops the payment reminder job.
func (j *PaymentReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment reminder job stopped")
}
