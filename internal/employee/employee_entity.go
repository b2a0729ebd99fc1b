package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`

	FullName         string `gorm:"size:255;not null"`
	Email            string `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	EmployeeNumber   string `gorm:"size:30;not null;uniqueIndex:uq_employee_number"`
	Phone            string `gorm:"size:30"`
	HireDate         time.Time
	EmploymentStatus string `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
