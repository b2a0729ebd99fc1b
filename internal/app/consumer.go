package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Anugo1/Workforce-management-system/internal/events"
	"github.com/Anugo1/Workforce-management-system/internal/leave"
	"github.com/Anugo1/Workforce-management-system/internal/messaging/kafka/consumer"
	"github.com/Anugo1/Workforce-management-system/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	var leavePublisher leave.EventPublisher
	writer, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		logger.Warn("kafka writer unavailable, approved events disabled", zap.Error(err))
		leavePublisher = leave.NewNoopEventPublisher()
	} else {
		defer writer.Close()
		leavePublisher = leave.NewKafkaEventPublisher(writer)
	}

	leaveRepo := leave.NewRepository(gormDB)
	leaveService := leave.NewServiceWithPublisher(
		sqlDB,
		leaveRepo,
		leavePublisher,
		envInt("AUTO_APPROVE_DAYS_THRESHOLD", leave.DefaultAutoApproveDays),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.LeaveRequestedTopic,
		GroupID:        "workforce-leave-autoprocess",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	cfg := consumer.LeaveRequestedConsumerConfig{
		MaxRetries: envInt("LEAVE_CONSUMER_MAX_RETRIES", 3),
		RetryDelay: envDuration("LEAVE_CONSUMER_RETRY_DELAY", 5*time.Second),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveRequested(ctx, reader, leaveService, cfg, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
