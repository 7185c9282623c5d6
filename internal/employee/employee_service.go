package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"spincraft-tracker/internal/auditlog"
	employeeerrors "spincraft-tracker/internal/employee/errors"
	"spincraft-tracker/internal/shared/contextutil"
	"spincraft-tracker/internal/shared/sanitize"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsTTL         = 1 * time.Hour
	dateLayout         = "2006-01-02"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, includeInactive bool) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, actorID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	audit  auditlog.Recorder
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, audit auditlog.Recorder, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		audit:  audit,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
	)

	name, err := validateFields(req.Name, req.Gender, req.JoiningDate, req.SalaryPerHour)
	if err != nil {
		s.logger.Warn("create employee validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	empl := &Employee{
		ID:            uuid.New(),
		Name:          name,
		Gender:        req.Gender,
		JoiningDate:   req.JoiningDate,
		SalaryPerHour: *req.SalaryPerHour,
		IsActive:      true,
	}

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.audit.RecordTx(ctx, tx, auditlog.Entry{
		Action:   auditlog.ActionAddEmployee,
		Details:  fmt.Sprintf("Added new employee: %s", empl.Name),
		AdminID:  actorID,
		Metadata: map[string]any{"employee_id": empl.ID.String()},
	}); err != nil {
		s.logger.Error("create employee audit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, includeInactive bool) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.Bool("include_inactive", includeInactive))
	empls, err := s.repo.FindAll(ctx, includeInactive)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Coalesce concurrent misses into one store read.
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx, false)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, optionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	actorID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	name, err := validateFields(req.Name, req.Gender, req.JoiningDate, req.SalaryPerHour)
	if err != nil {
		s.logger.Warn("update employee validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Name = name
	empl.Gender = req.Gender
	empl.JoiningDate = req.JoiningDate
	empl.SalaryPerHour = *req.SalaryPerHour
	if req.IsActive != nil {
		empl.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.audit.RecordTx(ctx, tx, auditlog.Entry{
		Action:   auditlog.ActionUpdateEmployee,
		Details:  fmt.Sprintf("Updated employee: %s", empl.Name),
		AdminID:  actorID,
		Metadata: map[string]any{"employee_id": id},
	}); err != nil {
		s.logger.Error("update employee audit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Deactivate(ctx context.Context, actorID, id string) error {
	s.logger.Debug("deactivate employee requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("deactivate employee fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := qtx.Deactivate(ctx, id); err != nil {
		s.logger.Error("deactivate employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.audit.RecordTx(ctx, tx, auditlog.Entry{
		Action:   auditlog.ActionDeleteEmployee,
		Details:  fmt.Sprintf("Deactivated employee: %s", empl.Name),
		AdminID:  actorID,
		Metadata: map[string]any{"employee_id": id},
	}); err != nil {
		s.logger.Error("deactivate employee audit failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("deactivate employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("deactivate employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func validateFields(name, gender, joiningDate string, rate *float64) (string, error) {
	clean := sanitize.Text(name)
	if clean == "" {
		return "", employeeerrors.ErrMissingName
	}
	if gender != "male" && gender != "female" {
		return "", employeeerrors.ErrInvalidGender
	}
	if _, err := time.Parse(dateLayout, joiningDate); err != nil {
		return "", employeeerrors.ErrInvalidJoiningDate
	}
	if rate == nil || *rate < 0 {
		return "", employeeerrors.ErrNegativeRate
	}
	return clean, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            empl.ID.String(),
		Name:          empl.Name,
		Gender:        empl.Gender,
		JoiningDate:   empl.JoiningDate,
		SalaryPerHour: empl.SalaryPerHour,
		IsActive:      empl.IsActive,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
