package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"carenest/background-worker-service/internal/app/background-worker/entity"
	"carenest/background-worker-service/internal/app/background-worker/repository"
	"carenest/pkg/logger"
	"carenest/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
)

const dateLayout = "2006-01-02"

// ArchiveService складывает события сервисов в архив аудита
// и строит ежедневные сводки по нему.
type ArchiveService struct {
	archiveRepo repository.EventArchiveRepository
}

// NewArchiveService создает новый сервис архива событий
func NewArchiveService(archiveRepo repository.EventArchiveRepository) *ArchiveService {
	return &ArchiveService{archiveRepo: archiveRepo}
}

// ProcessEvent разбирает сообщение из Kafka и сохраняет его в архив.
// Некорректный JSON архивируется с типом unknown: журнал аудита
// фиксирует все, что пришло в топик.
func (s *ArchiveService) ProcessEvent(ctx context.Context, topic, key string, value []byte, partition int, offset int64) error {
	var payload bson.M
	eventType := "unknown"

	if err := json.Unmarshal(value, &payload); err != nil {
		logger.Warn().
			Str("topic", topic).
			Int64("offset", offset).
			Err(err).
			Msg("archiving malformed event payload")
		payload = bson.M{"raw": string(value)}
	} else if et, ok := payload["event_type"].(string); ok && et != "" {
		eventType = et
	}

	event := &entity.ArchivedEvent{
		Topic:     topic,
		EventType: eventType,
		Key:       key,
		Payload:   payload,
		Partition: partition,
		Offset:    offset,
	}

	if err := s.archiveRepo.Archive(ctx, event); err != nil {
		return fmt.Errorf("failed to archive %s event: %w", eventType, err)
	}

	metrics.WorkerEventsArchived.WithLabelValues(eventType).Inc()

	logger.Info().
		Str("topic", topic).
		Str("event_type", eventType).
		Int64("offset", offset).
		Msg("event archived")

	return nil
}

// SummarizeDaily считает события за последние сутки и сохраняет сводку
func (s *ArchiveService) SummarizeDaily(ctx context.Context) error {
	since := time.Now().Add(-24 * time.Hour)

	counts, err := s.archiveRepo.CountByTypeSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to count archived events: %w", err)
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	summary := &entity.DailySummary{
		Date:        time.Now().Format(dateLayout),
		EventCounts: counts,
		Total:       total,
	}

	if err := s.archiveRepo.SaveSummary(ctx, summary); err != nil {
		return fmt.Errorf("failed to save daily summary: %w", err)
	}

	logger.Info().
		Str("date", summary.Date).
		Int64("total", total).
		Interface("counts", counts).
		Msg("daily event summary saved")

	return nil
}
