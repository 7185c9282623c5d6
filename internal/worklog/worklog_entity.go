package worklog

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPresent  Status = "present"
	StatusAbsent   Status = "absent"
	StatusOvertime Status = "overtime"
	StatusHoliday  Status = "holiday"
)

// AllStatuses is the closed set of attendance statuses.
var AllStatuses = []Status{StatusPresent, StatusAbsent, StatusOvertime, StatusHoliday}

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusOvertime, StatusHoliday:
		return true
	}
	return false
}

// WorkLog holds at most one row per employee and date.
type WorkLog struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_work_logs_employee_date,priority:1"`
	Date       string    `gorm:"column:date;type:varchar(10);not null;index;uniqueIndex:uq_work_logs_employee_date,priority:2"`
	StartTime  *string   `gorm:"column:start_time;type:varchar(5)"`
	EndTime    *string   `gorm:"column:end_time;type:varchar(5)"`
	TotalHours float64   `gorm:"column:total_hours;not null;default:0"`
	Status     Status    `gorm:"column:status;type:varchar(20);not null;index"`
	Notes      *string   `gorm:"column:notes;type:text"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(64);not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (WorkLog) TableName() string {
	return "work_logs"
}
