package service

import (
	"context"

	"carenest/reviews-service/internal/app/reviews/entity"

	"github.com/google/uuid"
)

type ReviewServiceInterface interface {
	SubmitReview(ctx context.Context, userID uuid.UUID, kind string, targetID int64, req *entity.CreateReviewRequest) (*entity.ReviewData, error)
	UpdateReview(ctx context.Context, reviewID uuid.UUID, userID uuid.UUID, req *entity.UpdateReviewRequest) (*entity.ReviewData, error)
	DeleteReview(ctx context.Context, reviewID uuid.UUID, userID uuid.UUID) (*entity.ReviewStats, error)
	GetReviews(ctx context.Context, kind string, targetID int64, page int) (*entity.ReviewListData, error)
	HasReviewed(ctx context.Context, userID uuid.UUID, kind string, targetID int64) (*entity.HasReviewedData, error)
}
