package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArchivedEvent - событие из Kafka, сохраненное в архив аудита.
// Payload хранится как сырой BSON документ: у каждого сервиса свой
// формат события, воркеру важен только event_type.
type ArchivedEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Topic     string             `bson:"topic" json:"topic"`
	EventType string             `bson:"event_type" json:"event_type"`
	Key       string             `bson:"key,omitempty" json:"key,omitempty"`
	Payload   bson.M             `bson:"payload" json:"payload"`
	Partition int                `bson:"partition" json:"partition"`
	Offset    int64              `bson:"offset" json:"offset"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// DailySummary - ежедневная сводка по архиву событий
type DailySummary struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date        string             `bson:"date" json:"date"` // YYYY-MM-DD
	EventCounts map[string]int64   `bson:"event_counts" json:"event_counts"`
	Total       int64              `bson:"total" json:"total"`
	GeneratedAt time.Time          `bson:"generated_at" json:"generated_at"`
}
