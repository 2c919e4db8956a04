package service

import "context"

// ArchiveServiceInterface определяет контракт сервиса архива событий
type ArchiveServiceInterface interface {
	ProcessEvent(ctx context.Context, topic, key string, value []byte, partition int, offset int64) error
	SummarizeDaily(ctx context.Context) error
}
