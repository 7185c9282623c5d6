package report

import "spincraft-tracker/internal/worklog"

// Filter narrows the report result set. Dates are inclusive and required.
type Filter struct {
	EmployeeID string   `form:"employee_id"`
	StartDate  string   `form:"start_date" binding:"required"`
	EndDate    string   `form:"end_date" binding:"required"`
	Statuses   []string `form:"status"`
	Q          string   `form:"q"`
}

type ExportQuery struct {
	Filter
	Format string `form:"format"`
}

type DashboardResponse struct {
	Today               string                    `json:"today"`
	PresentToday        int                       `json:"present_today"`
	TotalHoursThisMonth float64                   `json:"total_hours_this_month"`
	OvertimeHours       float64                   `json:"overtime_hours"`
	TotalEmployees      int                       `json:"total_employees"`
	RecentLogs          []worklog.WorkLogResponse `json:"recent_logs"`
}

type EmployeeStatsResponse struct {
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	TotalHours    float64 `json:"total_hours"`
	PresentDays   int     `json:"present_days"`
	AbsentDays    int     `json:"absent_days"`
	HolidayDays   int     `json:"holiday_days"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type SummaryResponse struct {
	TotalHours    float64                 `json:"total_hours"`
	PresentDays   int                     `json:"present_days"`
	AbsentDays    int                     `json:"absent_days"`
	HolidayDays   int                     `json:"holiday_days"`
	OvertimeHours float64                 `json:"overtime_hours"`
	Employees     []EmployeeStatsResponse `json:"employees"`
}

type ReportResponse struct {
	StartDate string                    `json:"start_date"`
	EndDate   string                    `json:"end_date"`
	Summary   SummaryResponse           `json:"summary"`
	Logs      []worklog.WorkLogResponse `json:"logs"`
}

// File is a rendered export ready to be streamed.
type File struct {
	FileName    string
	ContentType string
	Content     []byte
}
