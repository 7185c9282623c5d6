package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"spincraft-tracker/internal/auditlog"
	"spincraft-tracker/internal/employee"
	payrollerrors "spincraft-tracker/internal/payroll/errors"
	"spincraft-tracker/internal/shared/apperror"
	"spincraft-tracker/internal/shared/contextutil"
	"spincraft-tracker/internal/worklog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, req CalculateRequest) (CalculationResponse, error)
	SaveSnapshots(ctx context.Context, actorID string, req CalculateRequest) (SaveSnapshotsResponse, error)
	ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]SnapshotResponse, error)
	MarkPaid(ctx context.Context, actorID, id string) (SnapshotResponse, error)
	SalarySlip(ctx context.Context, id string) (SalarySlip, error)
	RefreshSnapshots(ctx context.Context, startDate, endDate string) (int, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	logs      worklog.Repository
	employees employee.Repository
	audit     auditlog.Recorder
	policy    Policy
	tracer    trace.Tracer
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	logs worklog.Repository,
	employees employee.Repository,
	audit auditlog.Recorder,
	policy Policy,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		logs:      logs,
		employees: employees,
		audit:     audit,
		policy:    policy,
		tracer:    otel.Tracer("spincraft-tracker/internal/payroll"),
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Calculate(ctx context.Context, req CalculateRequest) (CalculationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "payroll.calculate", trace.WithAttributes(
		attribute.String("payroll.start_date", req.StartDate),
		attribute.String("payroll.end_date", req.EndDate),
	))
	defer span.End()

	policy, err := s.requestPolicy(req)
	if err != nil {
		span.SetStatus(codes.Error, "validation_failed")
		return CalculationResponse{}, err
	}

	summary, err := s.aggregate(ctx, req.StartDate, req.EndDate, "", policy)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregate_failed")
		return CalculationResponse{}, err
	}

	span.SetAttributes(
		attribute.Int("payroll.employee_count", len(summary.Rows)),
		attribute.Float64("payroll.grand_total", summary.GrandTotal),
	)
	return mapToCalculationResponse(req.StartDate, req.EndDate, policy, summary), nil
}

func (s *service) SaveSnapshots(
	ctx context.Context,
	actorID string,
	req CalculateRequest,
) (SaveSnapshotsResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("save salary snapshots requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	policy, err := s.requestPolicy(req)
	if err != nil {
		return SaveSnapshotsResponse{}, err
	}

	summary, err := s.aggregate(ctx, req.StartDate, req.EndDate, "", policy)
	if err != nil {
		return SaveSnapshotsResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("save salary snapshots begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SaveSnapshotsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindByPeriod(ctx, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("save salary snapshots load existing failed", zap.Error(err))
		return SaveSnapshotsResponse{}, apperror.Store(err, "Failed to load salary calculations")
	}
	byEmployee := make(map[string]SalaryCalculation, len(existing))
	for _, c := range existing {
		byEmployee[c.EmployeeID.String()] = c
	}

	resp := SaveSnapshotsResponse{
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		GrandTotal: round2(summary.GrandTotal),
	}
	today := s.now().Format(worklog.DateLayout)

	for _, row := range summary.Rows {
		calc, ok := byEmployee[row.EmployeeID]
		if ok && calc.Status == StatusPaid {
			resp.SkippedPaid++
			continue
		}
		if !ok {
			calc = SalaryCalculation{
				ID:         uuid.New(),
				EmployeeID: uuid.MustParse(row.EmployeeID),
				StartDate:  req.StartDate,
				EndDate:    req.EndDate,
				Status:     StatusPending,
			}
		}
		calc.CalculationDate = today
		calc.Statuses = policy.statusKey()
		calc.TotalHours = row.TotalHours
		calc.HourlyRate = row.HourlyRate
		calc.TotalSalary = row.TotalPay
		calc.CreatedBy = actorID

		if ok {
			err = qtx.Update(ctx, &calc)
		} else {
			err = qtx.Create(ctx, &calc)
		}
		if err != nil {
			s.logger.Error("save salary snapshot persist failed",
				zap.String("employee_id", row.EmployeeID),
				zap.Error(err),
			)
			return SaveSnapshotsResponse{}, apperror.Store(err, "Failed to save salary calculations")
		}
		resp.Saved++
	}

	if err := s.audit.RecordTx(ctx, tx, auditlog.Entry{
		Action:  auditlog.ActionCalculateSalary,
		Details: fmt.Sprintf("Calculated salary for %d employees from %s to %s", resp.Saved, req.StartDate, req.EndDate),
		AdminID: actorID,
		Metadata: map[string]any{
			"start_date":     req.StartDate,
			"end_date":       req.EndDate,
			"employee_count": resp.Saved,
			"grand_total":    resp.GrandTotal,
		},
	}); err != nil {
		s.logger.Error("save salary snapshots audit failed", zap.Error(err))
		return SaveSnapshotsResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("save salary snapshots commit failed", zap.String("request_id", rid), zap.Error(err))
		return SaveSnapshotsResponse{}, err
	}

	s.logger.Info("save salary snapshots success",
		zap.String("request_id", rid),
		zap.Int("saved", resp.Saved),
		zap.Int("skipped_paid", resp.SkippedPaid),
	)
	return resp, nil
}

func (s *service) ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]SnapshotResponse, error) {
	status := strings.ToLower(strings.TrimSpace(filter.Status))
	if status != "" && status != StatusPending && status != StatusPaid {
		return nil, payrollerrors.ErrInvalidStatusFilter
	}

	calcs, err := s.repo.FindAll(ctx, status)
	if err != nil {
		s.logger.Error("list salary snapshots failed", zap.Error(err))
		return nil, apperror.Store(err, "Failed to load salary calculations")
	}

	names, err := s.employeeNames(ctx, calcs)
	if err != nil {
		return nil, err
	}

	resp := make([]SnapshotResponse, len(calcs))
	for i, c := range calcs {
		resp[i] = mapToSnapshotResponse(c, names[c.EmployeeID.String()])
	}
	return resp, nil
}

func (s *service) MarkPaid(ctx context.Context, actorID, id string) (SnapshotResponse, error) {
	s.logger.Debug("mark salary paid requested",
		zap.String("actor_id", actorID),
		zap.String("salary_calculation_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return SnapshotResponse{}, payrollerrors.ErrInvalidSnapshotID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark salary paid begin tx failed", zap.Error(err))
		return SnapshotResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	calc, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("mark salary paid fetch failed", zap.Error(err))
		return SnapshotResponse{}, mapRepositoryError(err)
	}
	if calc.Status == StatusPaid {
		return SnapshotResponse{}, payrollerrors.ErrAlreadyPaid
	}

	name := calc.EmployeeID.String()
	if empl, err := s.employees.WithTx(tx).FindByID(ctx, name); err == nil {
		name = empl.Name
	}

	paidAt := s.now().UTC()
	calc.Status = StatusPaid
	calc.PaidAt = &paidAt

	if err := qtx.Update(ctx, calc); err != nil {
		s.logger.Error("mark salary paid persist failed", zap.Error(err))
		return SnapshotResponse{}, apperror.Store(err, "Failed to update salary calculation")
	}

	if err := s.audit.RecordTx(ctx, tx, auditlog.Entry{
		Action:  auditlog.ActionMarkSalaryPaid,
		Details: fmt.Sprintf("Marked salary paid for %s (%s to %s)", name, calc.StartDate, calc.EndDate),
		AdminID: actorID,
		Metadata: map[string]any{
			"salary_calculation_id": id,
			"employee_id":           calc.EmployeeID.String(),
			"total_salary":          round2(calc.TotalSalary),
		},
	}); err != nil {
		s.logger.Error("mark salary paid audit failed", zap.Error(err))
		return SnapshotResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark salary paid commit failed", zap.Error(err))
		return SnapshotResponse{}, err
	}

	s.logger.Info("mark salary paid success", zap.String("salary_calculation_id", id))
	return mapToSnapshotResponse(*calc, name), nil
}

func (s *service) SalarySlip(ctx context.Context, id string) (SalarySlip, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalarySlip{}, payrollerrors.ErrInvalidSnapshotID
	}

	calc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("salary slip fetch failed", zap.Error(err))
		return SalarySlip{}, mapRepositoryError(err)
	}

	empl, err := s.employees.FindByID(ctx, calc.EmployeeID.String())
	if err != nil {
		s.logger.Error("salary slip employee fetch failed", zap.Error(err))
		return SalarySlip{}, mapRepositoryError(err)
	}

	content := renderSalarySlip(slipLines(*calc, empl.Name))
	return SalarySlip{
		FileName: fmt.Sprintf("salary-slip-%s-%s-to-%s.pdf", slugify(empl.Name), calc.StartDate, calc.EndDate),
		Content:  content,
	}, nil
}

// RefreshSnapshots recomputes pending snapshots that overlap the range, using the statuses
// each snapshot was saved with and the employee's current rate. Paid snapshots are frozen.
func (s *service) RefreshSnapshots(ctx context.Context, startDate, endDate string) (int, error) {
	if err := worklog.ValidateRange(startDate, endDate); err != nil {
		return 0, err
	}

	calcs, err := s.repo.FindPendingOverlapping(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("refresh salary snapshots load failed", zap.Error(err))
		return 0, apperror.Store(err, "Failed to load salary calculations")
	}

	refreshed := 0
	today := s.now().Format(worklog.DateLayout)
	for i := range calcs {
		calc := calcs[i]
		policy := s.policy
		if calc.Statuses != "" {
			statuses, err := worklog.ParseStatuses(strings.Split(calc.Statuses, ","))
			if err == nil {
				policy = policy.WithStatuses(statuses)
			}
		}

		summary, err := s.aggregate(ctx, calc.StartDate, calc.EndDate, calc.EmployeeID.String(), policy)
		if err != nil {
			return refreshed, err
		}

		var row Row
		if len(summary.Rows) > 0 {
			row = summary.Rows[0]
		}
		calc.TotalHours = row.TotalHours
		calc.TotalSalary = row.TotalPay
		if row.HourlyRate > 0 {
			calc.HourlyRate = row.HourlyRate
		}
		calc.CalculationDate = today

		if err := s.repo.Update(ctx, &calc); err != nil {
			s.logger.Error("refresh salary snapshot persist failed",
				zap.String("salary_calculation_id", calc.ID.String()),
				zap.Error(err),
			)
			return refreshed, apperror.Store(err, "Failed to refresh salary calculation")
		}
		refreshed++
	}

	s.logger.Info("refresh salary snapshots done",
		zap.String("start_date", startDate),
		zap.String("end_date", endDate),
		zap.Int("refreshed", refreshed),
	)
	return refreshed, nil
}

// requestPolicy validates the range and statuses before any store call.
func (s *service) requestPolicy(req CalculateRequest) (Policy, error) {
	if err := worklog.ValidateRange(req.StartDate, req.EndDate); err != nil {
		return Policy{}, err
	}
	statuses, err := worklog.ParseStatuses(req.Statuses)
	if err != nil {
		return Policy{}, err
	}
	return s.policy.WithStatuses(statuses), nil
}

func (s *service) aggregate(ctx context.Context, startDate, endDate, employeeID string, policy Policy) (Summary, error) {
	logs, err := s.logs.FindInRange(ctx, worklog.Query{
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Statuses:   policy.PayableStatuses,
	})
	if err != nil {
		s.logger.Error("payroll load work logs failed", zap.Error(err))
		return Summary{}, apperror.Store(err, "Failed to load work logs")
	}
	if len(logs) == 0 {
		return Summary{Rows: []Row{}}, nil
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, l := range logs {
		id := l.EmployeeID.String()
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	// Deactivated employees are included: their historical logs still count.
	empls, err := s.employees.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("payroll load employees failed", zap.Error(err))
		return Summary{}, apperror.Store(err, "Failed to load employees")
	}

	return Aggregate(logs, empls, policy), nil
}

func (s *service) employeeNames(ctx context.Context, calcs []SalaryCalculation) (map[string]string, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, c := range calcs {
		id := c.EmployeeID.String()
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
		s.logger.Error("payroll load employee names failed", zap.Error(err))
		return nil, apperror.Store(err, "Failed to load employees")
	}
	for _, e := range empls {
		names[e.ID.String()] = e.Name
	}
	return names, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrSnapshotNotFound
	}
	return err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mapToCalculationResponse(start, end string, policy Policy, summary Summary) CalculationResponse {
	statuses := make([]string, len(policy.PayableStatuses))
	for i, st := range policy.PayableStatuses {
		statuses[i] = string(st)
	}

	rows := make([]RowResponse, len(summary.Rows))
	for i, r := range summary.Rows {
		rows[i] = RowResponse{
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.Name,
			TotalHours:   round2(r.TotalHours),
			HourlyRate:   round2(r.HourlyRate),
			TotalPay:     round2(r.TotalPay),
		}
	}

	return CalculationResponse{
		StartDate:  start,
		EndDate:    end,
		Statuses:   statuses,
		Rows:       rows,
		GrandTotal: round2(summary.GrandTotal),
		TotalHours: round2(summary.TotalHours),
	}
}

func mapToSnapshotResponse(c SalaryCalculation, name string) SnapshotResponse {
	return SnapshotResponse{
		ID:              c.ID.String(),
		EmployeeID:      c.EmployeeID.String(),
		EmployeeName:    name,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		CalculationDate: c.CalculationDate,
		TotalHours:      round2(c.TotalHours),
		HourlyRate:      round2(c.HourlyRate),
		TotalSalary:     round2(c.TotalSalary),
		Status:          c.Status,
		PaidAt:          c.PaidAt,
	}
}
