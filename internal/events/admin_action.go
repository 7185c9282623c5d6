package events

import "time"

const AdminActionTopic = "ops.admin.audit.v1"

// AdminActionEvent mirrors an appended audit entry. Metadata carries action specific values
// such as the affected date of a work log.
type AdminActionEvent struct {
	EventType  string         `json:"event_type"`
	RequestID  string         `json:"request_id,omitempty"`
	LogID      string         `json:"log_id"`
	Action     string         `json:"action"`
	AdminID    string         `json:"admin_id"`
	Details    string         `json:"details"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// AffectedDate returns metadata.date when it is a string.
func (e AdminActionEvent) AffectedDate() string {
	if e.Metadata == nil {
		return ""
	}
	date, _ := e.Metadata["date"].(string)
	return date
}

// AffectedDates returns metadata.date followed by metadata.previous_date when a work log
// was moved to another day. Empty and repeated values are dropped.
func (e AdminActionEvent) AffectedDates() []string {
	var dates []string
	if d := e.AffectedDate(); d != "" {
		dates = append(dates, d)
	}
	if e.Metadata != nil {
		if prev, _ := e.Metadata["previous_date"].(string); prev != "" && prev != e.AffectedDate() {
			dates = append(dates, prev)
		}
	}
	return dates
}
