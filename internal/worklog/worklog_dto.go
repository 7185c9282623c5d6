package worklog

import "time"

type CreateWorkLogRequest struct {
	EmployeeID string   `json:"employee_id" binding:"required,uuid"`
	Date       string   `json:"date" binding:"required"`
	StartTime  *string  `json:"start_time"`
	EndTime    *string  `json:"end_time"`
	TotalHours *float64 `json:"total_hours" binding:"required"`
	Status     string   `json:"status" binding:"required"`
	Notes      *string  `json:"notes"`
}

type UpdateWorkLogRequest struct {
	Date       string   `json:"date" binding:"required"`
	StartTime  *string  `json:"start_time"`
	EndTime    *string  `json:"end_time"`
	TotalHours *float64 `json:"total_hours" binding:"required"`
	Status     string   `json:"status" binding:"required"`
	Notes      *string  `json:"notes"`
}

// ListFilter narrows work logs. Dates are inclusive.
type ListFilter struct {
	EmployeeID string   `form:"employee_id"`
	StartDate  string   `form:"start_date"`
	EndDate    string   `form:"end_date"`
	Statuses   []string `form:"status"`
	Q          string   `form:"q"`
}

type WorkLogResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Date         string    `json:"date"`
	StartTime    *string   `json:"start_time"`
	EndTime      *string   `json:"end_time"`
	TotalHours   float64   `json:"total_hours"`
	Status       Status    `json:"status"`
	Notes        *string   `json:"notes"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}
