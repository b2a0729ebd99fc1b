package leave

import (
	"time"

	"github.com/Anugo1/Workforce-management-system/internal/employee"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`

	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	ProcessedAt *time.Time

	// Unik saat terisi; constraint ini adalah penentu akhir untuk duplicate create
	IdempotencyKey *string `gorm:"type:varchar(128);uniqueIndex:uq_leave_requests_idempotency_key"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
