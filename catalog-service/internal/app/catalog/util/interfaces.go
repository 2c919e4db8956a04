package util

import (
	"context"
	"time"

	"carenest/catalog-service/internal/app/catalog/entity"
)

// TaxonomyCache - кеш справочников каталога в Redis.
// Интерфейс нужен для dependency injection и тестов.
type TaxonomyCache interface {
	GetLanguages(ctx context.Context) ([]entity.Language, error)
	SetLanguages(ctx context.Context, languages []entity.Language, ttl time.Duration) error
	GetServices(ctx context.Context) ([]entity.Service, error)
	SetServices(ctx context.Context, services []entity.Service, ttl time.Duration) error
	GetDegrees(ctx context.Context) ([]entity.Degree, error)
	SetDegrees(ctx context.Context, degrees []entity.Degree, ttl time.Duration) error
	GetLocations(ctx context.Context) ([]entity.Location, error)
	SetLocations(ctx context.Context, locations []entity.Location, ttl time.Duration) error
	Close() error
}

// MessagePublisher - интерфейс для отправки событий в Kafka
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
