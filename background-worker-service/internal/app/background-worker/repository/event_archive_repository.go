package repository

import (
	"context"
	"fmt"
	"time"

	"carenest/background-worker-service/internal/app/background-worker/entity"
	"carenest/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type eventArchiveRepository struct {
	events    *mongo.Collection
	summaries *mongo.Collection
}

// NewEventArchiveRepository создает новый репозиторий архива событий.
// Автоматически создает индексы по event_type и created_at для сводок.
func NewEventArchiveRepository(db *mongo.Database) EventArchiveRepository {
	events := db.Collection("archived_events")
	summaries := db.Collection("daily_summaries")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_type", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("event_type_created_at_idx"),
		},
		{
			Keys:    bson.D{{Key: "topic", Value: 1}},
			Options: options.Index().SetName("topic_idx"),
		},
	}

	if _, err := events.Indexes().CreateMany(ctx, indexModels); err != nil {
		// Индекс может уже существовать, работу не прерываем
		logger.Warn().Err(err).Msg("failed to create archive indexes")
	}

	summaryIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetName("date_idx").SetUnique(true),
	}
	if _, err := summaries.Indexes().CreateOne(ctx, summaryIndex); err != nil {
		logger.Warn().Err(err).Msg("failed to create summary index")
	}

	return &eventArchiveRepository{
		events:    events,
		summaries: summaries,
	}
}

// Archive сохраняет событие в архив
func (r *eventArchiveRepository) Archive(ctx context.Context, event *entity.ArchivedEvent) error {
	event.CreatedAt = time.Now()

	result, err := r.events.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to archive event: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}

	return nil
}

// CountByTypeSince считает события по типам начиная с указанного момента
func (r *eventArchiveRepository) CountByTypeSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$event_type",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.events.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		EventType string `bson:"_id"`
		Count     int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation: %w", err)
	}

	counts := make(map[string]int64, len(results))
	for _, res := range results {
		counts[res.EventType] = res.Count
	}

	return counts, nil
}

// SaveSummary сохраняет дневную сводку; сводка за тот же день перезаписывается
func (r *eventArchiveRepository) SaveSummary(ctx context.Context, summary *entity.DailySummary) error {
	summary.GeneratedAt = time.Now()

	filter := bson.M{"date": summary.Date}
	update := bson.M{"$set": bson.M{
		"event_counts": summary.EventCounts,
		"total":        summary.Total,
		"generated_at": summary.GeneratedAt,
	}}

	opts := options.Update().SetUpsert(true)
	if _, err := r.summaries.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}

	return nil
}
