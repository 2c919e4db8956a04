package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"carenest/pkg/logger"
	"carenest/reviews-service/internal/app/reviews/entity"
	"carenest/reviews-service/internal/app/reviews/infrastructure"
	"carenest/reviews-service/internal/app/reviews/repository"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrTargetNotFound  = errors.New("review target not found")
	ErrAlreadyReviewed = errors.New("user has already reviewed this target")
	ErrReviewNotFound  = errors.New("review not found")
	ErrUnauthorized    = errors.New("unauthorized access to review")
)

// PageSize - фиксированный размер страницы выдачи отзывов
const PageSize = 10

// ReviewService обрабатывает бизнес-логику отзывов.
// Координирует репозиторий, Catalog Service и Kafka.
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	catalogClient infrastructure.CatalogServiceClient
	kafkaProducer infrastructure.MessagePublisher
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	catalogClient infrastructure.CatalogServiceClient,
	kafkaProducer infrastructure.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		catalogClient: catalogClient,
		kafkaProducer: kafkaProducer,
	}
}

// SubmitReview создает новый отзыв.
// 1. Проверяет существование цели в Catalog Service
// 2. Оптимистичная проверка "уже оставлял отзыв" для быстрого ответа
// 3. Вставка; нарушение уникального индекса при гонке тоже дает ErrAlreadyReviewed
// 4. Отправляет событие REVIEW_CREATED в Kafka
func (s *ReviewService) SubmitReview(ctx context.Context, userID uuid.UUID, kind string, targetID int64, req *entity.CreateReviewRequest) (*entity.ReviewData, error) {
	exists, err := s.catalogClient.TargetExists(ctx, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to check target existence: %w", err)
	}
	if !exists {
		return nil, ErrTargetNotFound
	}

	// Предварительная проверка дает дружелюбную ошибку без похода на вставку.
	// Источником истины она не является: при гонке двух запросов обе проверки
	// могут пройти, и тогда дубликат отсечет уникальный индекс в Create.
	_, err = s.reviewRepo.GetByTargetAndUser(ctx, kind, targetID, userID)
	if err == nil {
		return nil, ErrAlreadyReviewed
	}
	if !errors.Is(err, repository.ErrReviewNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}

	now := time.Now()
	review := &entity.Review{
		ID:         uuid.New(),
		TargetKind: kind,
		TargetID:   targetID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.publishEvent(ctx, "REVIEW_CREATED", review)

	stats, err := s.reviewRepo.Stats(ctx, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return &entity.ReviewData{
		Review:        review,
		AverageRating: roundRating(stats.AverageRating),
		TotalReviews:  stats.TotalReviews,
	}, nil
}

// UpdateReview перезаписывает оценку и комментарий отзыва.
// Менять отзыв может только его автор.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID uuid.UUID, userID uuid.UUID, req *entity.UpdateReviewRequest) (*entity.ReviewData, error) {
	review, err := s.getOwnedReview(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	review.UpdatedAt = time.Now()

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	stats, err := s.reviewRepo.Stats(ctx, review.TargetKind, review.TargetID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return &entity.ReviewData{
		Review:        review,
		AverageRating: roundRating(stats.AverageRating),
		TotalReviews:  stats.TotalReviews,
	}, nil
}

// DeleteReview удаляет отзыв автора и возвращает пересчитанные агрегаты цели.
// Для цели без отзывов агрегаты равны 0/0, а не null.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID, userID uuid.UUID) (*entity.ReviewStats, error) {
	review, err := s.getOwnedReview(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to delete review: %w", err)
	}

	s.publishEvent(ctx, "REVIEW_DELETED", review)

	stats, err := s.reviewRepo.Stats(ctx, review.TargetKind, review.TargetID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return &entity.ReviewStats{
		AverageRating: roundRating(stats.AverageRating),
		TotalReviews:  stats.TotalReviews,
	}, nil
}

// GetReviews возвращает страницу отзывов о цели (новые первыми) вместе с агрегатами
func (s *ReviewService) GetReviews(ctx context.Context, kind string, targetID int64, page int) (*entity.ReviewListData, error) {
	exists, err := s.catalogClient.TargetExists(ctx, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to check target existence: %w", err)
	}
	if !exists {
		return nil, ErrTargetNotFound
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	reviews, err := s.reviewRepo.ListByTarget(ctx, kind, targetID, PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	stats, err := s.reviewRepo.Stats(ctx, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	lastPage := int((stats.TotalReviews + PageSize - 1) / PageSize)
	if lastPage < 1 {
		lastPage = 1
	}

	if reviews == nil {
		reviews = []entity.Review{}
	}

	return &entity.ReviewListData{
		Reviews: reviews,
		Pagination: entity.Pagination{
			CurrentPage: page,
			PerPage:     PageSize,
			Total:       stats.TotalReviews,
			LastPage:    lastPage,
		},
		AverageRating: roundRating(stats.AverageRating),
		TotalReviews:  stats.TotalReviews,
	}, nil
}

// HasReviewed сообщает, оставлял ли пользователь отзыв о цели,
// и возвращает сам отзыв, если он есть
func (s *ReviewService) HasReviewed(ctx context.Context, userID uuid.UUID, kind string, targetID int64) (*entity.HasReviewedData, error) {
	review, err := s.reviewRepo.GetByTargetAndUser(ctx, kind, targetID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return &entity.HasReviewedData{HasReviewed: false}, nil
		}
		return nil, fmt.Errorf("failed to check review: %w", err)
	}

	return &entity.HasReviewedData{HasReviewed: true, Review: review}, nil
}

// getOwnedReview получает отзыв и проверяет, что он принадлежит пользователю
func (s *ReviewService) getOwnedReview(ctx context.Context, reviewID uuid.UUID, userID uuid.UUID) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if review.UserID != userID {
		return nil, ErrUnauthorized
	}

	return review, nil
}

// publishEvent отправляет событие об отзыве в Kafka.
// Ошибки Kafka логируются, но не прерывают запрос: отзыв уже сохранен.
func (s *ReviewService) publishEvent(ctx context.Context, eventType string, review *entity.Review) {
	event := entity.ReviewEvent{
		EventType:  eventType,
		ReviewID:   review.ID.String(),
		TargetKind: review.TargetKind,
		TargetID:   review.TargetID,
		UserID:     review.UserID.String(),
		Rating:     review.Rating,
		Timestamp:  time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal review event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.ReviewID, eventData); err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish review event")
	}
}

// roundRating округляет средний рейтинг до 2 знаков (половина - вверх)
func roundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}
