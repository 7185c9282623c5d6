package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	attendanceerrors "spincraft-tracker/internal/attendance/errors"
	"spincraft-tracker/internal/auditlog"
	"spincraft-tracker/internal/employee"
	employeeerrors "spincraft-tracker/internal/employee/errors"
	"spincraft-tracker/internal/observability"
	"spincraft-tracker/internal/shared/apperror"
	"spincraft-tracker/internal/shared/contextutil"
	"spincraft-tracker/internal/worklog"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = worklog.DateLayout

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	GetDay(ctx context.Context, date string) (DayResponse, error)
	SaveDay(ctx context.Context, actorID, date string, req SaveDayRequest) (SaveDayResponse, error)
	Calendar(ctx context.Context, query CalendarQuery) (CalendarResponse, error)
}

type service struct {
	logs      worklog.Repository
	employees employee.Repository
	audit     auditlog.Recorder
	now       func() time.Time
	logger    *zap.Logger
}

// NewService builds the bulk attendance service. Writes are applied one by one without a
// surrounding transaction, so a failure part way leaves earlier writes in place.
func NewService(
	logs worklog.Repository,
	employees employee.Repository,
	audit auditlog.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		logs:      logs,
		employees: employees,
		audit:     audit,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) GetDay(ctx context.Context, date string) (DayResponse, error) {
	if err := worklog.ValidateDate(date); err != nil {
		return DayResponse{}, err
	}

	empls, err := s.employees.FindAll(ctx, false)
	if err != nil {
		s.logger.Error("get day load employees failed", zap.Error(err))
		return DayResponse{}, apperror.Store(err, "Failed to load employees")
	}

	logs, err := s.logs.FindByDate(ctx, date)
	if err != nil {
		s.logger.Error("get day load work logs failed", zap.String("date", date), zap.Error(err))
		return DayResponse{}, apperror.Store(err, "Failed to load work logs")
	}

	byEmployee := make(map[string]worklog.WorkLog, len(logs))
	for _, l := range logs {
		byEmployee[l.EmployeeID.String()] = l
	}

	rows := make([]DayRow, 0, len(empls))
	for _, e := range empls {
		row := DayRow{
			EmployeeID:    e.ID.String(),
			EmployeeName:  e.Name,
			SalaryPerHour: e.SalaryPerHour,
			Hours:         DefaultHours,
			Status:        DefaultStatus,
		}
		if l, ok := byEmployee[row.EmployeeID]; ok {
			id := l.ID.String()
			row.WorkLogID = &id
			row.Hours = l.TotalHours
			row.Status = l.Status
		}
		row.Pay = math.Round(row.Hours*row.SalaryPerHour*100) / 100
		rows = append(rows, row)
	}

	return DayResponse{Date: date, Rows: rows}, nil
}

func (s *service) SaveDay(
	ctx context.Context,
	actorID, date string,
	req SaveDayRequest,
) (SaveDayResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("save day requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("date", date),
		zap.Int("entries", len(req.Entries)),
	)

	if err := worklog.ValidateDate(date); err != nil {
		return SaveDayResponse{}, err
	}

	edits, err := toEdits(req.Entries)
	if err != nil {
		s.logger.Warn("save day validation failed", zap.Error(err))
		return SaveDayResponse{}, err
	}
	if err := ValidateEdits(edits); err != nil {
		s.logger.Warn("save day validation failed", zap.Error(err))
		return SaveDayResponse{}, err
	}

	if err := s.checkEmployees(ctx, edits); err != nil {
		return SaveDayResponse{}, err
	}

	existing, err := s.logs.FindByDate(ctx, date)
	if err != nil {
		s.logger.Error("save day load work logs failed", zap.String("date", date), zap.Error(err))
		return SaveDayResponse{}, apperror.Store(err, "Failed to load work logs")
	}

	plan, err := Reconcile(date, edits, existing)
	if err != nil {
		return SaveDayResponse{}, err
	}

	if plan.Empty() {
		s.logger.Info("save day no changes", zap.String("date", date))
		return SaveDayResponse{Date: date, NoChanges: true}, nil
	}

	inserted, updated, failedOp, applyErr := s.apply(ctx, actorID, plan)
	if applyErr != nil {
		batchErr := &BatchError{
			Date:       date,
			EmployeeID: failedOp.EmployeeID,
			Inserted:   inserted,
			Updated:    updated,
			Err:        applyErr,
		}
		s.logger.Error("save day halted", zap.Error(batchErr))

		if inserted+updated > 0 {
			s.recordBulk(ctx, actorID, date, inserted, updated, true)
		}
		return SaveDayResponse{}, apperror.Store(batchErr, fmt.Sprintf("Failed to save attendance for %s", date))
	}

	if err := s.recordBulk(ctx, actorID, date, inserted, updated, false); err != nil {
		return SaveDayResponse{}, apperror.Store(err, "Attendance saved but the audit entry could not be written")
	}

	s.logger.Info("save day success",
		zap.String("request_id", rid),
		zap.String("date", date),
		zap.Int("inserted", inserted),
		zap.Int("updated", updated),
	)
	return SaveDayResponse{Date: date, Inserted: inserted, Updated: updated}, nil
}

// apply runs the plan in order and stops at the first failure. An update whose record
// has vanished is retried as an insert.
func (s *service) apply(ctx context.Context, actorID string, plan Plan) (inserted, updated int, failed Op, err error) {
	for _, op := range plan.Ops {
		switch op.Kind {
		case OpUpdate:
			err = s.logs.UpdateHoursStatus(ctx, op.RecordID, op.Hours, op.Status, actorID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("work log vanished, inserting instead",
					zap.String("work_log_id", op.RecordID),
					zap.String("employee_id", op.EmployeeID),
				)
				if err = s.insert(ctx, actorID, plan.Date, op); err == nil {
					inserted++
					continue
				}
			}
			if err != nil {
				return inserted, updated, op, err
			}
			observability.AttendanceWrites().WithLabelValues(string(OpUpdate)).Inc()
			updated++
		case OpInsert:
			if err = s.insert(ctx, actorID, plan.Date, op); err != nil {
				return inserted, updated, op, err
			}
			inserted++
		}
	}
	return inserted, updated, Op{}, nil
}

func (s *service) insert(ctx context.Context, actorID, date string, op Op) error {
	empID, err := uuid.Parse(op.EmployeeID)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	err = s.logs.Create(ctx, &worklog.WorkLog{
		ID:         uuid.New(),
		EmployeeID: empID,
		Date:       date,
		TotalHours: op.Hours,
		Status:     op.Status,
		CreatedBy:  actorID,
	})
	if err != nil {
		return err
	}
	observability.AttendanceWrites().WithLabelValues(string(OpInsert)).Inc()
	return nil
}

func (s *service) recordBulk(ctx context.Context, actorID, date string, inserted, updated int, partial bool) error {
	details := fmt.Sprintf("%d updated, %d inserted on %s", updated, inserted, date)
	if partial {
		details = "Partial save: " + details
	}
	err := s.audit.Record(ctx, auditlog.Entry{
		Action:  auditlog.ActionBulkTimeTracking,
		Details: details,
		AdminID: actorID,
		Metadata: map[string]any{
			"updated_count":  updated,
			"inserted_count": inserted,
			"date":           date,
			"partial":        partial,
		},
	})
	if err != nil {
		s.logger.Error("save day audit failed", zap.String("date", date), zap.Error(err))
	}
	return err
}

// checkEmployees rejects edits naming unknown or inactive employees.
func (s *service) checkEmployees(ctx context.Context, edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}
	ids := make([]string, len(edits))
	for i, e := range edits {
		if _, err := uuid.Parse(e.EmployeeID); err != nil {
			return employeeerrors.ErrInvalidEmployeeID
		}
		ids[i] = e.EmployeeID
	}

	empls, err := s.employees.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("save day load employees failed", zap.Error(err))
		return apperror.Store(err, "Failed to load employees")
	}

	active := make(map[string]bool, len(empls))
	for _, e := range empls {
		active[e.ID.String()] = e.IsActive
	}
	for _, id := range ids {
		isActive, ok := active[id]
		if !ok {
			return attendanceerrors.ErrUnknownEmployee
		}
		if !isActive {
			return employeeerrors.ErrEmployeeInactive
		}
	}
	return nil
}

func (s *service) Calendar(ctx context.Context, query CalendarQuery) (CalendarResponse, error) {
	now := s.now()
	month := query.Month
	if month == "" {
		month = now.Format(monthLayout)
	}
	first, err := ParseMonth(month)
	if err != nil {
		return CalendarResponse{}, err
	}
	if query.EmployeeID != "" {
		if _, err := uuid.Parse(query.EmployeeID); err != nil {
			return CalendarResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
	}

	start, end := MonthBounds(first)
	logs, err := s.logs.FindInRange(ctx, worklog.Query{
		EmployeeID: query.EmployeeID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		s.logger.Error("calendar load work logs failed", zap.String("month", month), zap.Error(err))
		return CalendarResponse{}, apperror.Store(err, "Failed to load work logs")
	}

	names, err := s.names(ctx, logs)
	if err != nil {
		return CalendarResponse{}, err
	}

	byDate := make(map[string][]CalendarLog)
	for _, l := range logs {
		byDate[l.Date] = append(byDate[l.Date], CalendarLog{
			ID:           l.ID.String(),
			EmployeeID:   l.EmployeeID.String(),
			EmployeeName: names[l.EmployeeID.String()],
			TotalHours:   l.TotalHours,
			Status:       l.Status,
			StartTime:    l.StartTime,
			EndTime:      l.EndTime,
			Notes:        l.Notes,
		})
	}

	return CalendarResponse{
		Month: month,
		Days:  BuildCalendar(first, now.Format(dateLayout), byDate),
	}, nil
}

func (s *service) names(ctx context.Context, logs []worklog.WorkLog) (map[string]string, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, l := range logs {
		id := l.EmployeeID.String()
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	empls, err := s.employees.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("calendar load employees failed", zap.Error(err))
		return nil, apperror.Store(err, "Failed to load employees")
	}
	for _, e := range empls {
		names[e.ID.String()] = e.Name
	}
	return names, nil
}

func toEdits(entries []DayEntry) ([]Edit, error) {
	edits := make([]Edit, 0, len(entries))
	for _, e := range entries {
		if e.Hours == nil {
			return nil, apperror.RequiredField("hours")
		}
		st, err := worklog.ParseStatus(e.Status)
		if err != nil {
			return nil, err
		}
		employeeID := e.EmployeeID
		if id, err := uuid.Parse(employeeID); err == nil {
			employeeID = id.String()
		}
		edits = append(edits, Edit{
			EmployeeID: employeeID,
			Hours:      *e.Hours,
			Status:     st,
		})
	}
	return edits, nil
}
