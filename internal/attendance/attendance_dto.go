package attendance

import "spincraft-tracker/internal/worklog"

type DayEntry struct {
	EmployeeID string   `json:"employee_id" binding:"required"`
	Hours      *float64 `json:"hours" binding:"required"`
	Status     string   `json:"status" binding:"required"`
}

type SaveDayRequest struct {
	Entries []DayEntry `json:"entries" binding:"dive"`
}

type DayRow struct {
	EmployeeID    string         `json:"employee_id"`
	EmployeeName  string         `json:"employee_name"`
	SalaryPerHour float64        `json:"salary_per_hour"`
	WorkLogID     *string        `json:"work_log_id"`
	Hours         float64        `json:"hours"`
	Status        worklog.Status `json:"status"`
	Pay           float64        `json:"pay"`
}

type DayResponse struct {
	Date string   `json:"date"`
	Rows []DayRow `json:"rows"`
}

type SaveDayResponse struct {
	Date      string `json:"date"`
	NoChanges bool   `json:"no_changes"`
	Inserted  int    `json:"inserted_count"`
	Updated   int    `json:"updated_count"`
}

type CalendarLog struct {
	ID           string         `json:"id"`
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	TotalHours   float64        `json:"total_hours"`
	Status       worklog.Status `json:"status"`
	StartTime    *string        `json:"start_time"`
	EndTime      *string        `json:"end_time"`
	Notes        *string        `json:"notes"`
}

type CalendarDay struct {
	Date           string        `json:"date"`
	IsToday        bool          `json:"is_today"`
	IsCurrentMonth bool          `json:"is_current_month"`
	Logs           []CalendarLog `json:"logs"`
}

type CalendarQuery struct {
	Month      string `form:"month"`
	EmployeeID string `form:"employee_id"`
}

type CalendarResponse struct {
	Month string        `json:"month"`
	Days  []CalendarDay `json:"days"`
}
