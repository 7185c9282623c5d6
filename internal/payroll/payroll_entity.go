package payroll

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// SalaryCalculation is a persisted payroll result for one employee over a closed range.
// Money is kept at full precision; rounding happens when it is presented.
type SalaryCalculation struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID      uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_salary_calc_period,priority:1"`
	StartDate       string     `gorm:"column:start_date;type:varchar(10);not null;uniqueIndex:uq_salary_calc_period,priority:2"`
	EndDate         string     `gorm:"column:end_date;type:varchar(10);not null;uniqueIndex:uq_salary_calc_period,priority:3"`
	CalculationDate string     `gorm:"column:calculation_date;type:varchar(10);not null"`
	Statuses        string     `gorm:"column:statuses;type:varchar(64);not null"`
	TotalHours      float64    `gorm:"column:total_hours;not null;default:0"`
	HourlyRate      float64    `gorm:"column:hourly_rate;not null;default:0"`
	TotalSalary     float64    `gorm:"column:total_salary;not null;default:0"`
	Status          string     `gorm:"column:status;type:varchar(10);not null;default:'pending';index"`
	PaidAt          *time.Time `gorm:"column:paid_at"`
	CreatedBy       string     `gorm:"column:created_by;type:varchar(64);not null"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (SalaryCalculation) TableName() string {
	return "salary_calculations"
}
