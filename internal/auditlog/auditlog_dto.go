package auditlog

import "time"

// Entry is one audit record to append.
type Entry struct {
	Action   string
	Details  string
	AdminID  string
	Metadata map[string]any
}

type ListFilter struct {
	Limit  int    `form:"limit"`
	Q      string `form:"q"`
	Action string `form:"action"`
}

type AdminLogResponse struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Details   string         `json:"details"`
	AdminID   string         `json:"admin_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type ActionCounts struct {
	Add    int `json:"add"`
	Update int `json:"update"`
	Delete int `json:"delete"`
}

type ListResponse struct {
	Items  []AdminLogResponse `json:"items"`
	Total  int                `json:"total"`
	Counts ActionCounts       `json:"counts"`
}
