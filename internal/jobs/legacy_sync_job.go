package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LegacySyncJobName is the name of the legacy customer sync job
const LegacySyncJobName = "legacy_customer_sync"

// CustomerImporter pulls customers from the legacy accounting database.
type CustomerImporter interface {
	Enabled() bool
	SyncCustomers(ctx context.Context) (int, error)
}

// LegacySyncJob imports customers from the read-only accounting system
// on a schedule, so manual imports stay optional.
type LegacySyncJob struct {
	importer CustomerImporter
	logger   *zap.Logger
	timeout  time.Duration
}

func NewLegacySyncJob(importer CustomerImporter, logger *zap.Logger, timeout time.Duration) *LegacySyncJob {
	return &LegacySyncJob{
		importer: importer,
		logger:   logger,
		timeout:  timeout,
	}
}

// Run executes one import pass. Called by the scheduler.
func (j *LegacySyncJob) Run() {
	if !j.importer.Enabled() {
		j.logger.Debug("legacy sync skipped, integration disabled")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	imported, err := j.importer.SyncCustomers(ctx)
	if err != nil {
		j.logger.Error("legacy customer sync failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("legacy customer sync completed",
		zap.Int("imported", imported),
		zap.Duration("duration", time.Since(start)))
}

// RegisterLegacySyncJob registers the legacy customer sync with the scheduler.
func RegisterLegacySyncJob(scheduler *Scheduler, importer CustomerImporter, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewLegacySyncJob(importer, logger, timeout)
	return scheduler.AddJob(LegacySyncJobName, cronExpr, job.Run)
}
