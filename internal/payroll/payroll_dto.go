package payroll

import "time"

type CalculateRequest struct {
	StartDate string   `json:"start_date" form:"start_date" binding:"required"`
	EndDate   string   `json:"end_date" form:"end_date" binding:"required"`
	Statuses  []string `json:"statuses" form:"status"`
}

type RowResponse struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	TotalHours   float64 `json:"total_hours"`
	HourlyRate   float64 `json:"hourly_rate"`
	TotalPay     float64 `json:"total_pay"`
}

type CalculationResponse struct {
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	Statuses   []string      `json:"statuses"`
	Rows       []RowResponse `json:"rows"`
	GrandTotal float64       `json:"grand_total"`
	TotalHours float64       `json:"total_hours"`
}

type SaveSnapshotsResponse struct {
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Saved       int     `json:"saved_count"`
	SkippedPaid int     `json:"skipped_paid_count"`
	GrandTotal  float64 `json:"grand_total"`
}

type SnapshotFilter struct {
	Status string `form:"status"`
}

type SnapshotResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    string     `json:"employee_name"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	CalculationDate string     `json:"calculation_date"`
	TotalHours      float64    `json:"total_hours"`
	HourlyRate      float64    `json:"hourly_rate"`
	TotalSalary     float64    `json:"total_salary"`
	Status          string     `json:"status"`
	PaidAt          *time.Time `json:"paid_at"`
}

// SalarySlip is a rendered single page PDF.
type SalarySlip struct {
	FileName string
	Content  []byte
}
