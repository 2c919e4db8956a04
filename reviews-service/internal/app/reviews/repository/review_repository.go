package repository

import (
	"context"
	"errors"
	"fmt"

	"carenest/reviews-service/internal/app/reviews/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения
const uniqueViolationCode = "23505"

type reviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository создает новый репозиторий отзывов
func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create вставляет новый отзыв.
// Нарушение уникального индекса (reviewable_kind, reviewable_id, user_id)
// переклассифицируется в ErrDuplicateReview, чтобы гонка двух одновременных
// отправок выглядела для вызывающего как Conflict, а не как сбой хранилища.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, reviewable_kind, reviewable_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		ctx, query,
		review.ID, review.TargetKind, review.TargetID, review.UserID,
		review.Rating, review.Comment, review.CreatedAt, review.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetByID получает отзыв по ID
func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, reviewable_kind, reviewable_id, user_id, rating, comment, created_at, updated_at
		FROM reviews WHERE id = $1
	`

	review, err := r.scanReview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review by id: %w", err)
	}

	return review, nil
}

// GetByTargetAndUser получает отзыв конкретного пользователя о конкретной цели.
// Используется как оптимистичная предварительная проверка перед вставкой
// и для операции hasReviewed.
func (r *reviewRepository) GetByTargetAndUser(ctx context.Context, kind string, targetID int64, userID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, reviewable_kind, reviewable_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE reviewable_kind = $1 AND reviewable_id = $2 AND user_id = $3
	`

	review, err := r.scanReview(r.db.QueryRow(ctx, query, kind, targetID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review by target and user: %w", err)
	}

	return review, nil
}

// ListByTarget получает страницу отзывов о цели, новые первыми
func (r *reviewRepository) ListByTarget(ctx context.Context, kind string, targetID int64, limit, offset int) ([]entity.Review, error) {
	query := `
		SELECT id, reviewable_kind, reviewable_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE reviewable_kind = $1 AND reviewable_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, kind, targetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID, &review.TargetKind, &review.TargetID, &review.UserID,
			&review.Rating, &review.Comment, &review.CreatedAt, &review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Update перезаписывает оценку и комментарий отзыва
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $1, comment = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(ctx, query, review.Rating, review.Comment, review.UpdatedAt, review.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// Delete удаляет отзыв
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// Stats вычисляет агрегаты по цели заново при каждом чтении.
// При нуле отзывов COALESCE дает average = 0, count = 0, без NULL и ошибок.
func (r *reviewRepository) Stats(ctx context.Context, kind string, targetID int64) (*entity.ReviewStats, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE reviewable_kind = $1 AND reviewable_id = $2
	`

	var stats entity.ReviewStats
	err := r.db.QueryRow(ctx, query, kind, targetID).Scan(&stats.AverageRating, &stats.TotalReviews)
	if err != nil {
		return nil, fmt.Errorf("failed to compute review stats: %w", err)
	}

	return &stats, nil
}

func (r *reviewRepository) scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID, &review.TargetKind, &review.TargetID, &review.UserID,
		&review.Rating, &review.Comment, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}
