package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is never removed. Deactivation flips IsActive so historical work logs keep
// resolving to a name and rate.
type Employee struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name          string    `gorm:"column:name;type:varchar(150);not null;index"`
	Gender        string    `gorm:"column:gender;type:varchar(10);not null"`
	JoiningDate   string    `gorm:"column:joining_date;type:varchar(10);not null"`
	SalaryPerHour float64   `gorm:"column:salary_per_hour;not null;default:0"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
