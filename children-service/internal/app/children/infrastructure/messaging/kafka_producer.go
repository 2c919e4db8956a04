package messaging

import (
	"context"

	"github.com/segmentio/kafka-go"

	"carenest/pkg/logger"
)

// KafkaProducer отправляет события о регистрации детей в Kafka
type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:      kafka.TCP(brokers...),
		Topic:     topic,
		Balancer:  &kafka.LeastBytes{},
		BatchSize: 100,
	}

	return &KafkaProducer{writer: writer}
}

func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msg("failed to write message to kafka")
		return err
	}

	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
