package processor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCronScheduler(t *testing.T) {
	archiveSvc := new(MockArchiveService)

	scheduler := NewCronScheduler(archiveSvc)

	assert.NotNil(t, scheduler)
	assert.NotNil(t, scheduler.cron)
	assert.Empty(t, scheduler.GetEntries())
}

func TestCronScheduler_Start_RegistersDailyJob(t *testing.T) {
	archiveSvc := new(MockArchiveService)
	scheduler := NewCronScheduler(archiveSvc)

	err := scheduler.Start(context.Background(), "0 0 * * *")

	require.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	scheduler.Stop()
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	archiveSvc := new(MockArchiveService)
	scheduler := NewCronScheduler(archiveSvc)

	err := scheduler.Start(context.Background(), "not a schedule")

	assert.Error(t, err)
	assert.Empty(t, scheduler.GetEntries())
}
