package employee

type CreateEmployeeRequest struct {
	Name          string   `json:"name" binding:"required,max=150"`
	Gender        string   `json:"gender" binding:"required,oneof=male female"`
	JoiningDate   string   `json:"joining_date" binding:"required"`
	SalaryPerHour *float64 `json:"salary_per_hour" binding:"required,gte=0"`
}

type UpdateEmployeeRequest struct {
	Name          string   `json:"name" binding:"required,max=150"`
	Gender        string   `json:"gender" binding:"required,oneof=male female"`
	JoiningDate   string   `json:"joining_date" binding:"required"`
	SalaryPerHour *float64 `json:"salary_per_hour" binding:"required,gte=0"`
	IsActive      *bool    `json:"is_active"`
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	JoiningDate   string  `json:"joining_date"`
	SalaryPerHour float64 `json:"salary_per_hour"`
	IsActive      bool    `json:"is_active"`
}

// ListQuery holds the roster list filters. Paging is read separately via response.PageParams.
type ListQuery struct {
	IncludeInactive bool   `form:"include_inactive"`
	Q               string `form:"q"`
	SortBy          string `form:"sort_by" binding:"omitempty,oneof=name joining_date salary_per_hour"`
	SortDir         string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}
