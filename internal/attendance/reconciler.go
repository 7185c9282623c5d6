package attendance

import (
	attendanceerrors "spincraft-tracker/internal/attendance/errors"
	"spincraft-tracker/internal/worklog"
	worklogerrors "spincraft-tracker/internal/worklog/errors"
)

// Default edit state of a grid cell. A cell left at the default with no persisted log
// produces no write.
const (
	DefaultHours  = 0.0
	DefaultStatus = worklog.StatusPresent
)

// Edit is the edited (hours, status) pair for one employee on the target date.
type Edit struct {
	EmployeeID string
	Hours      float64
	Status     worklog.Status
}

func (e Edit) isDefault() bool {
	return e.Hours == DefaultHours && e.Status == DefaultStatus
}

type OpKind string

const (
	OpInsert OpKind = "insert"
	OpUpdate OpKind = "update"
)

// Op is one store write. RecordID is set for updates only.
type Op struct {
	Kind       OpKind
	EmployeeID string
	RecordID   string
	Hours      float64
	Status     worklog.Status
}

type Plan struct {
	Date string
	Ops  []Op
}

func (p Plan) Empty() bool {
	return len(p.Ops) == 0
}

func (p Plan) Counts() (inserts, updates int) {
	for _, op := range p.Ops {
		switch op.Kind {
		case OpInsert:
			inserts++
		case OpUpdate:
			updates++
		}
	}
	return inserts, updates
}

// ValidateEdits rejects the whole set when any edit is invalid.
func ValidateEdits(edits []Edit) error {
	seen := make(map[string]struct{}, len(edits))
	for _, e := range edits {
		if e.EmployeeID == "" {
			return attendanceerrors.ErrMissingEmployee
		}
		if _, dup := seen[e.EmployeeID]; dup {
			return attendanceerrors.ErrDuplicateEmployee
		}
		seen[e.EmployeeID] = struct{}{}

		if err := worklog.ValidateHours(e.Hours); err != nil {
			return err
		}
		if !e.Status.Valid() {
			return worklogerrors.ErrInvalidStatus
		}
	}
	return nil
}

// Reconcile turns the edits for one date into the minimal set of writes against the
// persisted logs. It performs no I/O. Ops follow the order of edits; logs for other dates
// are ignored.
func Reconcile(date string, edits []Edit, existing []worklog.WorkLog) (Plan, error) {
	if err := worklog.ValidateDate(date); err != nil {
		return Plan{}, err
	}
	if err := ValidateEdits(edits); err != nil {
		return Plan{}, err
	}

	byEmployee := make(map[string]worklog.WorkLog, len(existing))
	for _, l := range existing {
		if l.Date != date {
			continue
		}
		byEmployee[l.EmployeeID.String()] = l
	}

	plan := Plan{Date: date}
	for _, e := range edits {
		rec, ok := byEmployee[e.EmployeeID]
		switch {
		case !ok && e.isDefault():
			continue
		case !ok:
			plan.Ops = append(plan.Ops, Op{
				Kind:       OpInsert,
				EmployeeID: e.EmployeeID,
				Hours:      e.Hours,
				Status:     e.Status,
			})
		case rec.TotalHours != e.Hours || rec.Status != e.Status:
			plan.Ops = append(plan.Ops, Op{
				Kind:       OpUpdate,
				EmployeeID: e.EmployeeID,
				RecordID:   rec.ID.String(),
				Hours:      e.Hours,
				Status:     e.Status,
			})
		}
	}
	return plan, nil
}
