package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"carenest/background-worker-service/internal/app/background-worker/entity"
	"carenest/background-worker-service/internal/app/background-worker/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProcessEvent_ArchivesReviewEvent(t *testing.T) {
	repo := new(mocks.MockEventArchiveRepository)
	svc := NewArchiveService(repo)

	payload, _ := json.Marshal(map[string]interface{}{
		"event_type": "REVIEW_CREATED",
		"review_id":  "8b7e1c1a-45b1-4a3e-9a6e-000000000001",
		"rating":     5,
	})

	repo.On("Archive", mock.Anything, mock.MatchedBy(func(e *entity.ArchivedEvent) bool {
		return e.EventType == "REVIEW_CREATED" &&
			e.Topic == "review_events" &&
			e.Key == "doctor:7" &&
			e.Offset == 42
	})).Return(nil)

	err := svc.ProcessEvent(context.Background(), "review_events", "doctor:7", payload, 0, 42)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProcessEvent_MalformedPayloadStillArchived(t *testing.T) {
	repo := new(mocks.MockEventArchiveRepository)
	svc := NewArchiveService(repo)

	repo.On("Archive", mock.Anything, mock.MatchedBy(func(e *entity.ArchivedEvent) bool {
		return e.EventType == "unknown" && e.Payload["raw"] == "not json {{{"
	})).Return(nil)

	err := svc.ProcessEvent(context.Background(), "child_events", "", []byte("not json {{{"), 1, 7)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProcessEvent_MissingEventTypeBecomesUnknown(t *testing.T) {
	repo := new(mocks.MockEventArchiveRepository)
	svc := NewArchiveService(repo)

	payload, _ := json.Marshal(map[string]interface{}{"child_id": 5})

	repo.On("Archive", mock.Anything, mock.MatchedBy(func(e *entity.ArchivedEvent) bool {
		return e.EventType == "unknown"
	})).Return(nil)

	err := svc.ProcessEvent(context.Background(), "child_events", "", payload, 0, 1)

	require.NoError(t, err)
}

func TestProcessEvent_RepositoryError(t *testing.T) {
	repo := new(mocks.MockEventArchiveRepository)
	svc := NewArchiveService(repo)

	payload, _ := json.Marshal(map[string]interface{}{"event_type": "CHILD_REGISTERED"})

	repo.On("Archive", mock.Anything, mock.Anything).Return(errors.New("mongo unavailable"))

	err := svc.ProcessEvent(context.Background(), "child_events", "", payload, 0, 1)

	assert.Error(t, err)
}

func TestSummarizeDaily_SavesCountsAndTotal(t *testing.T) {
	repo := new(mocks.MockEventArchiveRepository)
	svc := NewArchiveService(repo)

	counts := map[string]int64{
		"REVIEW_CREATED":   12,
		"CHILD_REGISTERED": 3,
	}

	repo.On("CountByTypeSince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return time.Since(since) > 23*time.Hour && time.Since(since) < 25*time.Hour
	})).Return(counts, nil)

	repo.On("SaveSummary", mock.Anything, mock.MatchedBy(func(s *entity.DailySummary) bool {
		return s.Total == 15 &&
			s.EventCounts["REVIEW_CREATED"] == 12 &&
			s.Date == time.Now().Format("2006-01-02")
	})).Return(nil)

	err := svc.SummarizeDaily(context.Background())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSummarizeDaily_EmptyArchive(t *testing.T) {
	repo := new(mocks.MockEventArchiveRepository)
	svc := NewArchiveService(repo)

	repo.On("CountByTypeSince", mock.Anything, mock.Anything).Return(map[string]int64{}, nil)
	repo.On("SaveSummary", mock.Anything, mock.MatchedBy(func(s *entity.DailySummary) bool {
		return s.Total == 0 && len(s.EventCounts) == 0
	})).Return(nil)

	err := svc.SummarizeDaily(context.Background())

	require.NoError(t, err)
}

func TestSummarizeDaily_CountError(t *testing.T) {
	repo := new(mocks.MockEventArchiveRepository)
	svc := NewArchiveService(repo)

	repo.On("CountByTypeSince", mock.Anything, mock.Anything).Return(nil, errors.New("aggregation failed"))

	err := svc.SummarizeDaily(context.Background())

	assert.Error(t, err)
	repo.AssertNotCalled(t, "SaveSummary", mock.Anything, mock.Anything)
}
