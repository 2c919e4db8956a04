package processor

import (
	"context"
	"time"

	"carenest/background-worker-service/internal/app/background-worker/service"
	"carenest/pkg/logger"
	"carenest/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaConsumer читает один событийный топик и передает сообщения
// сервису архива. На каждый топик создается отдельный consumer.
type KafkaConsumer struct {
	reader     *kafka.Reader
	topic      string
	groupID    string
	archiveSvc service.ArchiveServiceInterface
	stopChan   chan struct{}
	doneChan   chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer для одного топика
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	archiveSvc service.ArchiveServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:     reader,
		topic:      topic,
		groupID:    groupID,
		archiveSvc: archiveSvc,
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().Str("topic", c.topic).Msg("Starting Kafka consumer")
	go c.consume(ctx)
}

// Stop останавливает consumer и дожидается завершения обработки
func (c *KafkaConsumer) Stop() {
	logger.Info().Str("topic", c.topic).Msg("Stopping Kafka consumer")
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	logger.Info().Str("topic", c.topic).Msg("Kafka consumer stopped")
}

// consume читает и обрабатывает сообщения из Kafka
func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}

				// Таймаут без сообщений - обычное дело, шумные ошибки логируем
				if readCtx.Err() == nil {
					logger.Error().Str("topic", c.topic).Err(err).Msg("Error fetching message")
					metrics.RecordKafkaError("background-worker-service", c.topic, "fetch")
					time.Sleep(time.Second)
				}
				continue
			}

			if err := c.processMessage(ctx, message); err != nil {
				logger.Error().
					Str("topic", c.topic).
					Int64("offset", message.Offset).
					Err(err).
					Msg("Error processing message")
				// Offset не коммитим - сообщение будет обработано повторно
				continue
			}

			if err := c.reader.CommitMessages(ctx, message); err != nil {
				logger.Error().Str("topic", c.topic).Err(err).Msg("Error committing message")
			}
		}
	}
}

// processMessage передает одно сообщение сервису архива
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	metrics.RecordKafkaMessageConsumed("background-worker-service", c.topic, c.groupID)

	return c.archiveSvc.ProcessEvent(
		ctx,
		c.topic,
		string(message.Key),
		message.Value,
		message.Partition,
		message.Offset,
	)
}

// GetStats возвращает статистику consumer
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
