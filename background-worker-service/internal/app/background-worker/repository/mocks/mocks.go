package mocks

import (
	"context"
	"time"

	"carenest/background-worker-service/internal/app/background-worker/entity"

	"github.com/stretchr/testify/mock"
)

// MockEventArchiveRepository - мок архива событий для тестирования
type MockEventArchiveRepository struct {
	mock.Mock
}

func (m *MockEventArchiveRepository) Archive(ctx context.Context, event *entity.ArchivedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventArchiveRepository) CountByTypeSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockEventArchiveRepository) SaveSummary(ctx context.Context, summary *entity.DailySummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}
