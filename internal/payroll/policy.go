package payroll

import (
	"math"
	"strings"

	payrollerrors "spincraft-tracker/internal/payroll/errors"
	"spincraft-tracker/internal/worklog"
)

const DefaultOvertimeDailyCap = 12.0

// Policy decides which logs are payable and how many of their hours count.
type Policy struct {
	PayableStatuses  []worklog.Status
	OvertimeDailyCap float64
}

func DefaultPolicy() Policy {
	return Policy{
		PayableStatuses:  []worklog.Status{worklog.StatusPresent, worklog.StatusOvertime},
		OvertimeDailyCap: DefaultOvertimeDailyCap,
	}
}

// NewPolicy parses configured statuses. An empty list falls back to the default payable
// set; a cap <= 0 disables capping.
func NewPolicy(statuses []string, overtimeCap float64) (Policy, error) {
	p := DefaultPolicy()
	if len(statuses) > 0 {
		parsed, err := worklog.ParseStatuses(statuses)
		if err != nil {
			return Policy{}, err
		}
		p.PayableStatuses = parsed
	}
	if overtimeCap > worklog.MaxHours {
		return Policy{}, payrollerrors.ErrInvalidOvertimeCap
	}
	p.OvertimeDailyCap = overtimeCap
	return p, nil
}

// WithStatuses returns a copy paying only the given statuses. Nil keeps the current set.
func (p Policy) WithStatuses(statuses []worklog.Status) Policy {
	if len(statuses) == 0 {
		return p
	}
	p.PayableStatuses = append([]worklog.Status(nil), statuses...)
	return p
}

func (p Policy) Pays(s worklog.Status) bool {
	for _, ps := range p.PayableStatuses {
		if ps == s {
			return true
		}
	}
	return false
}

// PayableHours is the contribution of one log. Overtime logs are capped per day.
func (p Policy) PayableHours(l worklog.WorkLog) float64 {
	if !p.Pays(l.Status) {
		return 0
	}
	if l.Status == worklog.StatusOvertime && p.OvertimeDailyCap > 0 {
		return math.Min(l.TotalHours, p.OvertimeDailyCap)
	}
	return l.TotalHours
}

func (p Policy) statusKey() string {
	parts := make([]string, len(p.PayableStatuses))
	for i, s := range p.PayableStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
