package worklog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"spincraft-tracker/internal/auditlog"
	"spincraft-tracker/internal/employee"
	employeeerrors "spincraft-tracker/internal/employee/errors"
	"spincraft-tracker/internal/observability"
	"spincraft-tracker/internal/shared/contextutil"
	"spincraft-tracker/internal/shared/sanitize"
	worklogerrors "spincraft-tracker/internal/worklog/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=worklog_service.go -destination=mock/worklog_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]WorkLogResponse, error)
	GetByID(ctx context.Context, id string) (WorkLogResponse, error)
	Create(ctx context.Context, actorID string, req CreateWorkLogRequest) (WorkLogResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateWorkLogRequest) (WorkLogResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	audit     auditlog.Recorder
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	audit auditlog.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("worklog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("worklog.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		audit:     audit,
		logger:    l,
	}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]WorkLogResponse, error) {
	s.logger.Debug("list work logs requested",
		zap.String("employee_id", filter.EmployeeID),
		zap.String("start_date", filter.StartDate),
		zap.String("end_date", filter.EndDate),
	)

	q, err := buildQuery(filter)
	if err != nil {
		return nil, err
	}

	logs, err := s.repo.FindInRange(ctx, q)
	if err != nil {
		s.logger.Error("list work logs failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	names, err := s.employeeNames(ctx, logs)
	if err != nil {
		return nil, err
	}

	resp := make([]WorkLogResponse, 0, len(logs))
	needle := strings.ToLower(strings.TrimSpace(filter.Q))
	for _, l := range logs {
		item := ToResponse(l, names[l.EmployeeID.String()])
		if needle != "" && !matches(item, needle) {
			continue
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkLogResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkLogResponse{}, worklogerrors.ErrInvalidWorkLogID
	}

	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get work log by id failed", zap.Error(err))
		return WorkLogResponse{}, mapRepositoryError(err)
	}

	names, err := s.employeeNames(ctx, []WorkLog{*log})
	if err != nil {
		return WorkLogResponse{}, err
	}
	return ToResponse(*log, names[log.EmployeeID.String()]), nil
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreateWorkLogRequest,
) (WorkLogResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create work log requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
	)

	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return WorkLogResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	fields, err := validateFields(req.Date, req.StartTime, req.EndTime, req.TotalHours, req.Status, req.Notes)
	if err != nil {
		s.logger.Warn("create work log validation failed", zap.Error(err))
		return WorkLogResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create work log begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return WorkLogResponse{}, err
	}
	defer tx.Rollback()

	empl, err := s.activeEmployee(ctx, tx, empID.String())
	if err != nil {
		return WorkLogResponse{}, err
	}

	log := &WorkLog{
		ID:         uuid.New(),
		EmployeeID: empID,
		CreatedBy:  actorID,
	}
	fields.apply(log)

	if err := s.repo.WithTx(tx).Create(ctx, log); err != nil {
		s.logger.Error("create work log persist failed", zap.Error(err))
		return WorkLogResponse{}, mapRepositoryError(err)
	}

	if err := s.audit.RecordTx(ctx, tx, auditlog.Entry{
		Action:  auditlog.ActionAddWorkLog,
		Details: fmt.Sprintf("Added work log for %s on %s", empl.Name, log.Date),
		AdminID: actorID,
		Metadata: map[string]any{
			"work_log_id": log.ID.String(),
			"employee_id": empID.String(),
			"date":        log.Date,
		},
	}); err != nil {
		s.logger.Error("create work log audit failed", zap.Error(err))
		return WorkLogResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create work log commit failed", zap.String("request_id", rid), zap.Error(err))
		return WorkLogResponse{}, err
	}

	observability.AttendanceWrites().WithLabelValues("insert").Inc()
	s.logger.Info("create work log success",
		zap.String("request_id", rid),
		zap.String("work_log_id", log.ID.String()),
	)

	return ToResponse(*log, empl.Name), nil
}

func (s *service) Update(
	ctx context.Context,
	actorID, id string,
	req UpdateWorkLogRequest,
) (WorkLogResponse, error) {
	s.logger.Debug("update work log requested",
		zap.String("actor_id", actorID),
		zap.String("work_log_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return WorkLogResponse{}, worklogerrors.ErrInvalidWorkLogID
	}

	fields, err := validateFields(req.Date, req.StartTime, req.EndTime, req.TotalHours, req.Status, req.Notes)
	if err != nil {
		s.logger.Warn("update work log validation failed", zap.Error(err))
		return WorkLogResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update work log begin tx failed", zap.Error(err))
		return WorkLogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	log, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update work log fetch existing failed", zap.Error(err))
		return WorkLogResponse{}, mapRepositoryError(err)
	}

	empl, err := s.employees.WithTx(tx).FindByID(ctx, log.EmployeeID.String())
	if err != nil {
		s.logger.Error("update work log fetch employee failed", zap.Error(err))
		return WorkLogResponse{}, mapEmployeeError(err)
	}

	previousDate := log.Date
	fields.apply(log)

	if err := qtx.Update(ctx, log); err != nil {
		s.logger.Error("update work log persist failed", zap.Error(err))
		return WorkLogResponse{}, mapRepositoryError(err)
	}

	metadata := map[string]any{
		"work_log_id": id,
		"employee_id": log.EmployeeID.String(),
		"date":        log.Date,
	}
	if previousDate != log.Date {
		metadata["previous_date"] = previousDate
	}
	if err := s.audit.RecordTx(ctx, tx, auditlog.Entry{
		Action:   auditlog.ActionUpdateWorkLog,
		Details:  fmt.Sprintf("Updated work log for %s on %s", empl.Name, log.Date),
		AdminID:  actorID,
		Metadata: metadata,
	}); err != nil {
		s.logger.Error("update work log audit failed", zap.Error(err))
		return WorkLogResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update work log commit failed", zap.Error(err))
		return WorkLogResponse{}, err
	}

	observability.AttendanceWrites().WithLabelValues("update").Inc()
	s.logger.Info("update work log success", zap.String("work_log_id", id))

	return ToResponse(*log, empl.Name), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	s.logger.Debug("delete work log requested",
		zap.String("actor_id", actorID),
		zap.String("work_log_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return worklogerrors.ErrInvalidWorkLogID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete work log begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	log, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("delete work log fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	name := log.EmployeeID.String()
	if empl, err := s.employees.WithTx(tx).FindByID(ctx, name); err == nil {
		name = empl.Name
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete work log failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.audit.RecordTx(ctx, tx, auditlog.Entry{
		Action:  auditlog.ActionDeleteWorkLog,
		Details: fmt.Sprintf("Deleted work log for %s on %s", name, log.Date),
		AdminID: actorID,
		Metadata: map[string]any{
			"work_log_id": id,
			"employee_id": log.EmployeeID.String(),
			"date":        log.Date,
		},
	}); err != nil {
		s.logger.Error("delete work log audit failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete work log commit failed", zap.Error(err))
		return err
	}

	observability.AttendanceWrites().WithLabelValues("delete").Inc()
	s.logger.Info("delete work log success", zap.String("work_log_id", id))
	return nil
}

func (s *service) activeEmployee(ctx context.Context, tx *sql.Tx, id string) (*employee.Employee, error) {
	empl, err := s.employees.WithTx(tx).FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("work log employee lookup failed", zap.String("employee_id", id), zap.Error(err))
		return nil, mapEmployeeError(err)
	}
	if !empl.IsActive {
		return nil, employeeerrors.ErrEmployeeInactive
	}
	return empl, nil
}

func (s *service) employeeNames(ctx context.Context, logs []WorkLog) (map[string]string, error) {
	seen := make(map[string]struct{}, len(logs))
	ids := make([]string, 0, len(logs))
	for _, l := range logs {
		id := l.EmployeeID.String()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	empls, err := s.employees.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("resolve employee names failed", zap.Error(err))
		return nil, mapEmployeeError(err)
	}

	names := make(map[string]string, len(empls))
	for _, e := range empls {
		names[e.ID.String()] = e.Name
	}
	return names, nil
}

type validFields struct {
	date      string
	startTime *string
	endTime   *string
	hours     float64
	status    Status
	notes     *string
}

func (f validFields) apply(log *WorkLog) {
	log.Date = f.date
	log.StartTime = f.startTime
	log.EndTime = f.endTime
	log.TotalHours = f.hours
	log.Status = f.status
	log.Notes = f.notes
}

func validateFields(date string, start, end *string, hours *float64, status string, notes *string) (validFields, error) {
	var f validFields

	if err := ValidateDate(date); err != nil {
		return f, err
	}
	if hours == nil {
		return f, worklogerrors.ErrHoursOutOfRange
	}
	if err := ValidateHours(*hours); err != nil {
		return f, err
	}
	st, err := ParseStatus(status)
	if err != nil {
		return f, err
	}
	startTime, err := validateClock(start)
	if err != nil {
		return f, err
	}
	endTime, err := validateClock(end)
	if err != nil {
		return f, err
	}

	f.date = date
	f.startTime = startTime
	f.endTime = endTime
	f.hours = *hours
	f.status = st
	f.notes = sanitize.OptionalText(notes)
	return f, nil
}

func buildQuery(filter ListFilter) (Query, error) {
	var q Query

	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return q, employeeerrors.ErrInvalidEmployeeID
		}
		q.EmployeeID = filter.EmployeeID
	}
	if filter.StartDate != "" {
		if err := ValidateDate(filter.StartDate); err != nil {
			return q, err
		}
		q.StartDate = filter.StartDate
	}
	if filter.EndDate != "" {
		if err := ValidateDate(filter.EndDate); err != nil {
			return q, err
		}
		q.EndDate = filter.EndDate
	}
	if q.StartDate != "" && q.EndDate != "" {
		if err := ValidateRange(q.StartDate, q.EndDate); err != nil {
			return q, err
		}
	}

	statuses, err := ParseStatuses(filter.Statuses)
	if err != nil {
		return q, err
	}
	q.Statuses = statuses
	return q, nil
}

func matches(item WorkLogResponse, needle string) bool {
	if strings.Contains(strings.ToLower(item.EmployeeName), needle) {
		return true
	}
	if strings.Contains(string(item.Status), needle) {
		return true
	}
	return item.Notes != nil && strings.Contains(strings.ToLower(*item.Notes), needle)
}

func mapEmployeeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return err
}

// ToResponse joins a log with the employee name shown next to it.
func ToResponse(log WorkLog, employeeName string) WorkLogResponse {
	return WorkLogResponse{
		ID:           log.ID.String(),
		EmployeeID:   log.EmployeeID.String(),
		EmployeeName: employeeName,
		Date:         log.Date,
		StartTime:    log.StartTime,
		EndTime:      log.EndTime,
		TotalHours:   log.TotalHours,
		Status:       log.Status,
		Notes:        log.Notes,
		CreatedBy:    log.CreatedBy,
		CreatedAt:    log.CreatedAt,
	}
}
