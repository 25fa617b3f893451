package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMarker struct {
	marked int64
	err    error
	calls  int
}

func (m *fakeMarker) MarkOverdue(ctx context.Context) (int64, error) {
	m.calls++
	return m.marked, m.err
}

type fakeImporter struct {
	enabled  bool
	imported int
	calls    int
}

func (i *fakeImporter) Enabled() bool { return i.enabled }

func (i *fakeImporter) SyncCustomers(ctx context.Context) (int, error) {
	i.calls++
	return i.imported, nil
}

func TestSchedulerRejectsDuplicateJobNames(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("sweep", "0 0 2 * * *", func() {}))
	err := s.AddJob("sweep", "0 0 3 * * *", func() {})
	assert.Error(t, err)
	assert.Equal(t, []string{"sweep"}, s.GetJobNames())
}

func TestSchedulerRejectsBadCronExpression(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	assert.Error(t, s.AddJob("sweep", "not a cron expr", func() {}))
	assert.Empty(t, s.GetJobNames())
}

func TestOverdueJobRun(t *testing.T) {
	marker := &fakeMarker{marked: 3}
	job := NewOverdueJob(marker, zap.NewNop(), time.Second)

	job.Run()
	assert.Equal(t, 1, marker.calls)
}

func TestOverdueJobRunSurvivesErrors(t *testing.T) {
	marker := &fakeMarker{err: errors.New("db down")}
	job := NewOverdueJob(marker, zap.NewNop(), time.Second)

	job.Run()
	assert.Equal(t, 1, marker.calls)
}

func TestLegacySyncJobSkipsWhenDisabled(t *testing.T) {
	importer := &fakeImporter{enabled: false}
	job := NewLegacySyncJob(importer, zap.NewNop(), time.Second)

	job.Run()
	assert.Zero(t, importer.calls)

	importer.enabled = true
	job.Run()
	assert.Equal(t, 1, importer.calls)
}
