package processor

import (
	"context"

	"carenest/background-worker-service/internal/app/background-worker/service"
	"carenest/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler запускает периодические задачи воркера
type CronScheduler struct {
	cron       *cron.Cron
	archiveSvc service.ArchiveServiceInterface
}

// NewCronScheduler создает новый планировщик
func NewCronScheduler(archiveSvc service.ArchiveServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:       cron.New(),
		archiveSvc: archiveSvc,
	}
}

// Start регистрирует ежедневную сводку и запускает планировщик
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("Cron job triggered: daily event summary")

		if err := s.archiveSvc.SummarizeDaily(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to build daily event summary")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("Cron scheduler started")

	return nil
}

// Stop останавливает планировщик и дожидается текущих задач
func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

// GetEntries возвращает зарегистрированные задачи
func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
