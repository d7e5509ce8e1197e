package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/cvhub/adapters/event"
	"github.com/khoahotran/cvhub/adapters/persistence"
	activityUC "github.com/khoahotran/cvhub/internal/application/usecase/activity"
	"github.com/khoahotran/cvhub/internal/config"
	"github.com/khoahotran/cvhub/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting CV Hub Worker...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Repositories
	activityRepo := persistence.NewPostgresActivityRepo(dbPool, appLogger)

	// Worker Use Case
	recordEventUC := activityUC.NewRecordEventUseCase(activityRepo, appLogger)

	// Kafka Consumer
	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("cannot start worker", errors.New("config Kafka brokers not found"))
	}
	topics := []string{event.TopicCVEvents, event.TopicRecommendationEvents}
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Kafka.Brokers,
		GroupID:     cfg.Kafka.GroupID,
		GroupTopics: topics,
		MinBytes:    10e3,
		MaxBytes:    10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.Strings("topics", topics), zap.String("group_id", cfg.Kafka.GroupID))

	event.NewConsumer(consumer, recordEventUC.Execute, appLogger).Run(ctx)
	appLogger.Info("Worker stopped")
}
