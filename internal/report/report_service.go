package report

import (
	"context"
	"math"
	"strings"
	"time"

	"spincraft-tracker/internal/employee"
	reporterrors "spincraft-tracker/internal/report/errors"
	"spincraft-tracker/internal/shared/apperror"
	"spincraft-tracker/internal/worklog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const recentLogLimit = 5

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Dashboard(ctx context.Context) (DashboardResponse, error)
	Report(ctx context.Context, filter Filter) (ReportResponse, error)
	Export(ctx context.Context, filter Filter, format string) (File, error)
}

type service struct {
	worklogs  worklog.Service
	logs      worklog.Repository
	employees employee.Repository
	tracer    trace.Tracer
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	worklogs worklog.Service,
	logs worklog.Repository,
	employees employee.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		worklogs:  worklogs,
		logs:      logs,
		employees: employees,
		tracer:    otel.Tracer("spincraft-tracker/internal/report"),
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Dashboard(ctx context.Context) (DashboardResponse, error) {
	today := s.now().Format(worklog.DateLayout)
	start, end := monthRange(s.now())

	monthLogs, err := s.logs.FindInRange(ctx, worklog.Query{StartDate: start, EndDate: end})
	if err != nil {
		s.logger.Error("dashboard load month logs failed", zap.Error(err))
		return DashboardResponse{}, apperror.Store(err, "Failed to load work logs")
	}

	recent, err := s.logs.FindInRange(ctx, worklog.Query{Limit: recentLogLimit})
	if err != nil {
		s.logger.Error("dashboard load recent logs failed", zap.Error(err))
		return DashboardResponse{}, apperror.Store(err, "Failed to load work logs")
	}

	active, err := s.employees.FindAll(ctx, false)
	if err != nil {
		s.logger.Error("dashboard load employees failed", zap.Error(err))
		return DashboardResponse{}, apperror.Store(err, "Failed to load employees")
	}

	names, err := s.recentNames(ctx, recent, active)
	if err != nil {
		return DashboardResponse{}, err
	}

	stats := Dashboard(monthLogs, today)
	recentResp := make([]worklog.WorkLogResponse, len(recent))
	for i, l := range recent {
		recentResp[i] = worklog.ToResponse(l, names[l.EmployeeID.String()])
	}

	return DashboardResponse{
		Today:               today,
		PresentToday:        stats.PresentToday,
		TotalHoursThisMonth: round2(stats.TotalHoursThisMonth),
		OvertimeHours:       round2(stats.OvertimeHours),
		TotalEmployees:      len(active),
		RecentLogs:          recentResp,
	}, nil
}

func (s *service) Report(ctx context.Context, filter Filter) (ReportResponse, error) {
	ctx, span := s.tracer.Start(ctx, "report.generate", trace.WithAttributes(
		attribute.String("report.start_date", filter.StartDate),
		attribute.String("report.end_date", filter.EndDate),
	))
	defer span.End()

	logs, err := s.filtered(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load_failed")
		return ReportResponse{}, err
	}
	span.SetAttributes(attribute.Int("report.log_count", len(logs)))

	return ReportResponse{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Summary:   mapToSummaryResponse(Summarize(logs)),
		Logs:      logs,
	}, nil
}

func (s *service) Export(ctx context.Context, filter Filter, format string) (File, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return File{}, reporterrors.ErrInvalidFormat
	}

	ctx, span := s.tracer.Start(ctx, "report.export", trace.WithAttributes(
		attribute.String("report.format", format),
		attribute.String("report.start_date", filter.StartDate),
		attribute.String("report.end_date", filter.EndDate),
	))
	defer span.End()

	logs, err := s.filtered(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load_failed")
		return File{}, err
	}

	file := File{FileName: exportFileName(filter.StartDate, filter.EndDate, format)}
	switch format {
	case FormatXLSX:
		file.ContentType = contentTypeXLSX
		file.Content, err = renderXLSX(logs, Summarize(logs))
	default:
		file.ContentType = contentTypeCSV
		file.Content, err = renderCSV(logs)
	}
	if err != nil {
		s.logger.Error("report export render failed", zap.String("format", format), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "render_failed")
		return File{}, err
	}

	s.logger.Info("report exported",
		zap.String("format", format),
		zap.Int("rows", len(logs)),
		zap.String("file_name", file.FileName),
	)
	return file, nil
}

// filtered returns the same rows the work log list shows for the filter.
func (s *service) filtered(ctx context.Context, filter Filter) ([]worklog.WorkLogResponse, error) {
	if strings.TrimSpace(filter.StartDate) == "" || strings.TrimSpace(filter.EndDate) == "" {
		return nil, reporterrors.ErrRangeRequired
	}
	return s.worklogs.List(ctx, worklog.ListFilter{
		EmployeeID: filter.EmployeeID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Statuses:   filter.Statuses,
		Q:          filter.Q,
	})
}

// recentNames resolves names from the active roster first and only asks the store for
// deactivated employees.
func (s *service) recentNames(
	ctx context.Context,
	recent []worklog.WorkLog,
	active []employee.Employee,
) (map[string]string, error) {
	names := make(map[string]string, len(active))
	for _, e := range active {
		names[e.ID.String()] = e.Name
	}

	var missing []string
	for _, l := range recent {
		id := l.EmployeeID.String()
		if _, ok := names[id]; !ok {
			names[id] = ""
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return names, nil
	}

	empls, err := s.employees.FindByIDs(ctx, missing)
	if err != nil {
		s.logger.Error("dashboard load employee names failed", zap.Error(err))
		return nil, apperror.Store(err, "Failed to load employees")
	}
	for _, e := range empls {
		names[e.ID.String()] = e.Name
	}
	return names, nil
}

func monthRange(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(worklog.DateLayout), last.Format(worklog.DateLayout)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mapToSummaryResponse(sum Summary) SummaryResponse {
	employees := make([]EmployeeStatsResponse, len(sum.Employees))
	for i, es := range sum.Employees {
		employees[i] = EmployeeStatsResponse{
			EmployeeID:    es.EmployeeID,
			EmployeeName:  es.Name,
			TotalHours:    round2(es.TotalHours),
			PresentDays:   es.PresentDays,
			AbsentDays:    es.AbsentDays,
			HolidayDays:   es.HolidayDays,
			OvertimeHours: round2(es.OvertimeHours),
		}
	}
	return SummaryResponse{
		TotalHours:    round2(sum.TotalHours),
		PresentDays:   sum.PresentDays,
		AbsentDays:    sum.AbsentDays,
		HolidayDays:   sum.HolidayDays,
		OvertimeHours: round2(sum.OvertimeHours),
		Employees:     employees,
	}
}
