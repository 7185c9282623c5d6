package auditlog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Action tags written by the dashboard.
const (
	ActionAddEmployee      = "ADD_EMPLOYEE"
	ActionUpdateEmployee   = "UPDATE_EMPLOYEE"
	ActionDeleteEmployee   = "DELETE_EMPLOYEE"
	ActionAddWorkLog       = "ADD_WORKLOG"
	ActionUpdateWorkLog    = "UPDATE_WORKLOG"
	ActionDeleteWorkLog    = "DELETE_WORKLOG"
	ActionBulkTimeTracking = "BULK_TIME_TRACKING"
	ActionCalculateSalary  = "CALCULATE_SALARY"
	ActionMarkSalaryPaid   = "MARK_SALARY_PAID"
	ActionLogin            = "LOGIN"
)

// AdminLog is append only. Rows are never updated or deleted.
type AdminLog struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Action    string            `gorm:"column:action;type:varchar(50);not null;index"`
	Details   string            `gorm:"column:details;type:text;not null"`
	AdminID   string            `gorm:"column:admin_id;type:varchar(64);not null;index"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata"`
	Timestamp time.Time         `gorm:"column:timestamp;not null;index"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}
