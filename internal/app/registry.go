package app

import (
	"database/sql"

	"github.com/Anugo1/Workforce-management-system/internal/department"
	"github.com/Anugo1/Workforce-management-system/internal/employee"
	"github.com/Anugo1/Workforce-management-system/internal/leave"
	"github.com/Anugo1/Workforce-management-system/internal/messaging/kafka"
	"github.com/Anugo1/Workforce-management-system/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	leavePublisher leave.EventPublisher,
) error {
	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	departmentService := department.NewService(db, departmentRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	leaveService := leave.NewServiceWithPublisher(
		db,
		leaveRepo,
		leavePublisher,
		envInt("AUTO_APPROVE_DAYS_THRESHOLD", leave.DefaultAutoApproveDays),
	)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		department.RegisterRoutes(api, departmentHandler)
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler)
	}

	return nil
}
