package app

import (
	"context"
	"database/sql"
	"os"

	"github.com/Anugo1/Workforce-management-system/internal/department"
	"github.com/Anugo1/Workforce-management-system/internal/employee"
	"github.com/Anugo1/Workforce-management-system/internal/leave"
	"github.com/Anugo1/Workforce-management-system/internal/middleware"
	"github.com/Anugo1/Workforce-management-system/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

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
	logger.Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		// Redis hanya untuk cache; API tetap jalan tanpa dia.
		logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("redis connection established")
	}

	var leavePublisher leave.EventPublisher
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		writer, err := connection.ConnectKafkaWithRetry(broker, 5)
		if err != nil {
			logger.Warn("kafka unavailable, leave events disabled", zap.Error(err))
			leavePublisher = leave.NewNoopEventPublisher()
		} else {
			logger.Info("kafka connection established", zap.String("broker", broker))
			leavePublisher = leave.NewKafkaEventPublisher(writer)
		}
	} else {
		logger.Info("KAFKA_BROKER not set, leave events disabled")
		leavePublisher = leave.NewNoopEventPublisher()
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(50, 100))

	return registerModules(router, sqlDB, gormDB, redisClient, leavePublisher)
}

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&department.Department{},
		&employee.Employee{},
		&leave.LeaveRequest{},
	); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return ensureSupportTables(context.Background(), sqlDB)
}

// ensureSupportTables membuat tabel yang tidak dikelola lewat entity GORM.
func ensureSupportTables(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS counters (
			counter_type VARCHAR(50) PRIMARY KEY,
			current_value BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
			id UUID PRIMARY KEY,
			request_id VARCHAR(100),
			aggregate_type VARCHAR(50) NOT NULL,
			aggregate_id UUID NOT NULL,
			event_type VARCHAR(100) NOT NULL,
			topic VARCHAR(200) NOT NULL,
			payload JSONB NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			retry_count INT NOT NULL DEFAULT 0,
			error_message VARCHAR(500),
			next_retry_at TIMESTAMPTZ,
			processed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
			ON outbox_events (status, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
