package infrastructure

import "context"

// MessagePublisher - интерфейс для отправки событий в Kafka
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// CatalogServiceClient - интерфейс клиента Catalog Service.
// Отзыв можно оставить только о существующем враче или няне.
type CatalogServiceClient interface {
	TargetExists(ctx context.Context, kind string, targetID int64) (bool, error)
}
