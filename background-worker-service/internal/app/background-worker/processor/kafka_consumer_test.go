package processor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockArchiveService мок для ArchiveServiceInterface
type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) ProcessEvent(ctx context.Context, topic, key string, value []byte, partition int, offset int64) error {
	args := m.Called(ctx, topic, key, value, partition, offset)
	return args.Error(0)
}

func (m *MockArchiveService) SummarizeDaily(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestNewKafkaConsumer(t *testing.T) {
	archiveSvc := new(MockArchiveService)

	consumer := NewKafkaConsumer([]string{"localhost:9092"}, "review_events", "test-group", 1, 10e6, archiveSvc)

	assert.NotNil(t, consumer)
	assert.NotNil(t, consumer.reader)
	assert.NotNil(t, consumer.stopChan)
	assert.NotNil(t, consumer.doneChan)
	assert.Equal(t, "review_events", consumer.topic)

	consumer.reader.Close()
}

func TestKafkaConsumer_ProcessMessage_DelegatesToArchive(t *testing.T) {
	archiveSvc := new(MockArchiveService)

	consumer := &KafkaConsumer{
		topic:      "child_events",
		groupID:    "test-group",
		archiveSvc: archiveSvc,
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}

	ctx := context.Background()

	payload, _ := json.Marshal(map[string]interface{}{
		"event_type": "CHILD_REGISTERED",
		"child_id":   5,
	})

	message := kafka.Message{
		Topic:     "child_events",
		Partition: 2,
		Offset:    17,
		Key:       []byte("BRAC123"),
		Value:     payload,
	}

	archiveSvc.On("ProcessEvent", ctx, "child_events", "BRAC123", payload, 2, int64(17)).Return(nil)

	err := consumer.processMessage(ctx, message)

	assert.NoError(t, err)
	archiveSvc.AssertExpectations(t)
}

func TestKafkaConsumer_ProcessMessage_PropagatesError(t *testing.T) {
	archiveSvc := new(MockArchiveService)

	consumer := &KafkaConsumer{
		topic:      "review_events",
		groupID:    "test-group",
		archiveSvc: archiveSvc,
	}

	ctx := context.Background()
	message := kafka.Message{Value: []byte(`{"event_type":"REVIEW_CREATED"}`)}

	archiveSvc.On("ProcessEvent", ctx, "review_events", "", message.Value, 0, int64(0)).
		Return(errors.New("mongo unavailable"))

	err := consumer.processMessage(ctx, message)

	assert.Error(t, err)
}
