package jobs

import (
	"context"
	"log/slog"
	"time"

	"haulage/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderBroadcastJob periodically re-announces pending orders that no
// transporter has claimed yet.
type OrderBroadcastJob struct {
	handler    commands.BroadcastPendingOrdersCommandHandler
	cron       *cron.Cron
	schedule   string
	staleAfter time.Duration
	limit      int
	logger     *slog.Logger
}

// NewOrderBroadcastJob creates a job that runs on the given cron schedule and
// re-announces orders still pending after staleAfter, at most limit per run.
func NewOrderBroadcastJob(
	handler commands.BroadcastPendingOrdersCommandHandler,
	schedule string,
	staleAfter time.Duration,
	limit int,
	logger *slog.Logger,
) *OrderBroadcastJob {
	return &OrderBroadcastJob{
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		schedule:   schedule,
		staleAfter: staleAfter,
		limit:      limit,
		logger:     logger.With("component", "order_broadcast_job"),
	}
}

// Start begins the broadcast job on its schedule.
func (j *OrderBroadcastJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewBroadcastPendingOrdersCommand(j.staleAfter, j.limit)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order broadcast job misconfigured", "error", err)
			return
		}

		announced, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order broadcast job failed", "error", err)
			return
		}

		if announced > 0 {
			j.logger.InfoContext(ctx, "Re-announced stale pending orders", "count", announced)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order broadcast job started", "schedule", j.schedule)
	return nil
}

// Stop stops the broadcast job.
func (j *OrderBroadcastJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order broadcast job stopped")
}
