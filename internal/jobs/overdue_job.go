package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OverdueJobName is the name of the overdue invoice job
const OverdueJobName = "mark_overdue_invoices"

// OverdueMarker flips Sent invoices past their due date to Overdue.
// The interface keeps the job decoupled from the service package.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context) (int64, error)
}

// OverdueJob derives the Overdue invoice status nightly instead of on
// every read, so list filters and dashboard counts can group by the
// stored status.
type OverdueJob struct {
	invoices OverdueMarker
	logger   *zap.Logger
	timeout  time.Duration
}

func NewOverdueJob(invoices OverdueMarker, logger *zap.Logger, timeout time.Duration) *OverdueJob {
	return &OverdueJob{
		invoices: invoices,
		logger:   logger,
		timeout:  timeout,
	}
}

// Run executes one overdue sweep. Called by the scheduler.
func (j *OverdueJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	marked, err := j.invoices.MarkOverdue(ctx)
	if err != nil {
		j.logger.Error("overdue invoice sweep failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("overdue invoice sweep completed",
		zap.Int64("marked", marked),
		zap.Duration("duration", time.Since(start)))
}

// RegisterOverdueJob registers the nightly overdue sweep with the scheduler.
func RegisterOverdueJob(scheduler *Scheduler, invoices OverdueMarker, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewOverdueJob(invoices, logger, timeout)
	return scheduler.AddJob(OverdueJobName, cronExpr, job.Run)
}
