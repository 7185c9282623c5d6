package attendance

import "fmt"

// BatchError reports a bulk save that stopped at its first failed write. Inserted and
// Updated count the writes applied before the failure; they are not rolled back.
type BatchError struct {
	Date       string
	EmployeeID string
	Inserted   int
	Updated    int
	Err        error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("save attendance for %s stopped at employee %s after %d inserted, %d updated: %v",
		e.Date, e.EmployeeID, e.Inserted, e.Updated, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

func (e *BatchError) ErrorDetails() any {
	cause := ""
	if e.Err != nil {
		cause = e.Err.Error()
	}
	return map[string]any{
		"date":        e.Date,
		"employee_id": e.EmployeeID,
		"inserted":    e.Inserted,
		"updated":     e.Updated,
		"cause":       cause,
	}
}
