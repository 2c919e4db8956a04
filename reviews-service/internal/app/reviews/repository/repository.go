package repository

import (
	"context"
	"errors"

	"carenest/reviews-service/internal/app/reviews/entity"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview возвращается при нарушении уникального индекса
	// (reviewable_kind, reviewable_id, user_id) - именно он, а не проверка
	// в сервисе, гарантирует "один отзыв на пару" при гонке
	ErrDuplicateReview = errors.New("duplicate review for this target and user")
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	GetByTargetAndUser(ctx context.Context, kind string, targetID int64, userID uuid.UUID) (*entity.Review, error)
	ListByTarget(ctx context.Context, kind string, targetID int64, limit, offset int) ([]entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, kind string, targetID int64) (*entity.ReviewStats, error)
}
