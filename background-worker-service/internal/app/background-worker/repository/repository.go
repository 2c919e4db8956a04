package repository

import (
	"context"
	"time"

	"carenest/background-worker-service/internal/app/background-worker/entity"
)

// EventArchiveRepository - архив событий в MongoDB
type EventArchiveRepository interface {
	Archive(ctx context.Context, event *entity.ArchivedEvent) error
	CountByTypeSince(ctx context.Context, since time.Time) (map[string]int64, error)
	SaveSummary(ctx context.Context, summary *entity.DailySummary) error
}
