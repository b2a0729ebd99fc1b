package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Anugo1/Workforce-management-system/internal/events"
	"github.com/Anugo1/Workforce-management-system/internal/leave"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type LeaveRequestedConsumerConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

func ConsumeLeaveRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	leaveService leave.Service,
	cfg LeaveRequestedConsumerConfig,
	logger *zap.Logger,
) {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 5 * time.Second
	}

	log := logger.Named("kafka.consumer.leave_requested")
	log.Info("leave requested consumer started",
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("retry_delay", cfg.RetryDelay),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave requested consumer stopped")
				return
			}
			log.Error("fetch leave requested message failed", zap.Error(err))
			continue
		}

		var event events.LeaveRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.EventType != "" && event.EventType != events.LeaveRequestedEventType {
			log.Warn("skipping event with unexpected type",
				zap.String("event_type", event.EventType),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.ID == "" {
			log.Error("leave_requested event missing id, dropping",
				zap.ByteString("payload", msg.Value),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := processWithRetry(ctx, leaveService, event, cfg, log); err != nil {
			if ctx.Err() != nil {
				log.Info("leave requested consumer stopped")
				return
			}
			// Sudah habis jatah retry: commit supaya partition tidak macet.
			log.Error("leave request auto-process dead-lettered",
				zap.String("leave_request_id", event.ID),
				zap.String("employee_id", event.EmployeeID),
				zap.Int("attempts", cfg.MaxRetries),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave requested message failed", zap.Error(err))
		}
	}
}

func processWithRetry(
	ctx context.Context,
	leaveService leave.Service,
	event events.LeaveRequestedEvent,
	cfg LeaveRequestedConsumerConfig,
	log *zap.Logger,
) error {
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		status, err := leaveService.AutoProcess(ctx, event.ID)
		if err == nil {
			if status != "" {
				log.Info("leave request auto-processed",
					zap.String("leave_request_id", event.ID),
					zap.String("status", status),
				)
			}
			return nil
		}

		lastErr = err
		log.Warn("leave request auto-process attempt failed",
			zap.String("leave_request_id", event.ID),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", cfg.MaxRetries),
			zap.Error(err),
		)

		if attempt == cfg.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}

	return lastErr
}
