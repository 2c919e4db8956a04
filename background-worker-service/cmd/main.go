package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carenest/background-worker-service/internal/app/background-worker/config"
	"carenest/background-worker-service/internal/app/background-worker/handler"
	"carenest/background-worker-service/internal/app/background-worker/processor"
	"carenest/background-worker-service/internal/app/background-worker/repository"
	"carenest/background-worker-service/internal/app/background-worker/service"
	"carenest/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("background-worker-service", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer disconnectCancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)

	archiveRepo := repository.NewEventArchiveRepository(db)
	archiveService := service.NewArchiveService(archiveRepo)

	// Отдельный consumer на каждый событийный топик
	consumers := make([]*processor.KafkaConsumer, 0, len(cfg.Kafka.Topics))
	for _, topic := range cfg.Kafka.Topics {
		consumer := processor.NewKafkaConsumer(
			cfg.Kafka.Brokers,
			topic,
			cfg.Kafka.GroupID,
			cfg.Kafka.MinBytes,
			cfg.Kafka.MaxBytes,
			archiveService,
		)
		consumer.Start(ctx)
		consumers = append(consumers, consumer)
	}

	scheduler := processor.NewCronScheduler(archiveService)
	if err := scheduler.Start(ctx, cfg.CronSchedule.DailySummary); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start cron scheduler")
	}

	healthHandler := handler.NewHealthCheckHandler(mongoClient)
	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Background Worker Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Background Worker Service...")

	cancel()
	for _, consumer := range consumers {
		consumer.Stop()
	}
	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Background Worker Service stopped gracefully")
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err = mongo.Connect(connectCtx, clientOptions)
		connectCancel()

		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = client.Ping(pingCtx, nil)
			pingCancel()

			if err == nil {
				return client, nil
			}
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
