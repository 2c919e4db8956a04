package entity

import (
	"time"

	"github.com/google/uuid"
)

// Виды целей отзыва. Отзыв всегда привязан к врачу или няне из Catalog Service.
const (
	TargetDoctor = "doctor"
	TargetNanny  = "nanny"
)

// ValidTargetKind проверяет, что вид цели поддерживается
func ValidTargetKind(kind string) bool {
	return kind == TargetDoctor || kind == TargetNanny
}

// Review представляет отзыв пользователя о враче или няне.
// Пара (TargetKind, TargetID) + UserID уникальна: один пользователь
// может оставить не больше одного отзыва на одну цель.
type Review struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TargetKind string    `json:"target_kind" db:"reviewable_kind"`
	TargetID   int64     `json:"target_id" db:"reviewable_id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Rating     int       `json:"rating" db:"rating"` // Оценка от 1 до 5
	Comment    string    `json:"comment,omitempty" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// ReviewStats - агрегаты по цели, всегда вычисляются из строк отзывов,
// никогда не хранятся отдельно
type ReviewStats struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// ReviewEvent - событие для Kafka (REVIEW_CREATED, REVIEW_DELETED)
type ReviewEvent struct {
	EventType  string    `json:"event_type"`
	ReviewID   string    `json:"review_id"`
	TargetKind string    `json:"target_kind"`
	TargetID   int64     `json:"target_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating"`
	Timestamp  time.Time `json:"timestamp"`
}
