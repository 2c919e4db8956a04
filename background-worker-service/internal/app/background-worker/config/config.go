package config

import (
	"os"
	"strconv"
)

// Config содержит все настройки Background Worker Service.
// Воркер слушает событийные топики остальных сервисов и складывает
// события в MongoDB как журнал аудита.
type Config struct {
	Server       ServerConfig
	MongoDB      MongoDBConfig
	Kafka        KafkaConfig
	CronSchedule CronScheduleConfig
}

// ServerConfig - HTTP сервер для health checks и метрик
type ServerConfig struct {
	Host string
	Port string
}

type MongoDBConfig struct {
	URI      string
	Database string
}

// KafkaConfig - настройки подписки на события
type KafkaConfig struct {
	Brokers  []string
	Topics   []string // Топики для прослушивания (review_events, child_events, caregiver_events)
	GroupID  string   // ID группы потребителей для распределения нагрузки
	MinBytes int
	MaxBytes int
}

// CronScheduleConfig - расписание фоновых задач
type CronScheduleConfig struct {
	DailySummary string // Ежедневная сводка по архиву событий
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8085"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "event_archive"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topics: []string{
				getEnv("KAFKA_REVIEW_TOPIC", "review_events"),
				getEnv("KAFKA_CHILD_TOPIC", "child_events"),
				getEnv("KAFKA_CAREGIVER_TOPIC", "caregiver_events"),
			},
			GroupID:  getEnv("KAFKA_GROUP_ID", "background-worker-group"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10e6),
		},
		CronSchedule: CronScheduleConfig{
			// По умолчанию сводка считается каждый день в полночь
			DailySummary: getEnv("CRON_DAILY_SUMMARY", "0 0 * * *"),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
