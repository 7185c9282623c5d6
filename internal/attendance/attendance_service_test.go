package attendance_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"spincraft-tracker/internal/attendance"
	attendanceerrors "spincraft-tracker/internal/attendance/errors"
	"spincraft-tracker/internal/auditlog"
	auditMock "spincraft-tracker/internal/auditlog/mock"
	"spincraft-tracker/internal/employee"
	employeeerrors "spincraft-tracker/internal/employee/errors"
	employeeMock "spincraft-tracker/internal/employee/mock"
	"spincraft-tracker/internal/shared/apperror"
	"spincraft-tracker/internal/worklog"
	worklogerrors "spincraft-tracker/internal/worklog/errors"
	worklogMock "spincraft-tracker/internal/worklog/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const date = "2024-03-04"

type serviceDeps struct {
	service   attendance.Service
	logs      *worklogMock.MockRepository
	employees *employeeMock.MockRepository
	audit     *auditMock.MockRecorder
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	logs := worklogMock.NewMockRepository(ctrl)
	employees := employeeMock.NewMockRepository(ctrl)
	audit := auditMock.NewMockRecorder(ctrl)

	return &serviceDeps{
		service:   attendance.NewService(logs, employees, audit),
		logs:      logs,
		employees: employees,
		audit:     audit,
	}
}

func hours(v float64) *float64 { return &v }

func activeRoster(ids ...uuid.UUID) []employee.Employee {
	out := make([]employee.Employee, len(ids))
	for i, id := range ids {
		out[i] = employee.Employee{ID: id, Name: "emp-" + id.String()[:4], IsActive: true}
	}
	return out
}

func TestAttendanceService_SaveDay(t *testing.T) {
	ctx := context.Background()

	t.Run("three default and two changed employees yield two writes and one audit", func(t *testing.T) {
		deps := setupServiceTest(t)
		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}
		existing := worklog.WorkLog{ID: uuid.New(), EmployeeID: ids[3], Date: date, TotalHours: 8, Status: worklog.StatusPresent}

		req := attendance.SaveDayRequest{}
		for _, id := range ids[:3] {
			req.Entries = append(req.Entries, attendance.DayEntry{EmployeeID: id.String(), Hours: hours(0), Status: "present"})
		}
		req.Entries = append(req.Entries,
			attendance.DayEntry{EmployeeID: ids[3].String(), Hours: hours(10), Status: "overtime"},
			attendance.DayEntry{EmployeeID: ids[4].String(), Hours: hours(8), Status: "present"},
		)

		deps.employees.EXPECT().FindByIDs(ctx, gomock.Len(5)).Return(activeRoster(ids...), nil)
		deps.logs.EXPECT().FindByDate(ctx, date).Return([]worklog.WorkLog{existing}, nil)
		deps.logs.EXPECT().UpdateHoursStatus(ctx, existing.ID.String(), 10.0, worklog.StatusOvertime, "admin-1").Return(nil)
		deps.logs.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, l *worklog.WorkLog) error {
			assert.Equal(t, ids[4], l.EmployeeID)
			assert.Equal(t, date, l.Date)
			assert.Equal(t, "admin-1", l.CreatedBy)
			return nil
		})
		deps.audit.EXPECT().Record(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, entry auditlog.Entry) error {
			assert.Equal(t, auditlog.ActionBulkTimeTracking, entry.Action)
			assert.Equal(t, "1 updated, 1 inserted on 2024-03-04", entry.Details)
			assert.Equal(t, 1, entry.Metadata["updated_count"])
			assert.Equal(t, 1, entry.Metadata["inserted_count"])
			assert.Equal(t, date, entry.Metadata["date"])
			return nil
		})

		resp, err := deps.service.SaveDay(ctx, "admin-1", date, req)
		require.NoError(t, err)
		assert.False(t, resp.NoChanges)
		assert.Equal(t, 1, resp.Inserted)
		assert.Equal(t, 1, resp.Updated)
	})

	t.Run("no changes writes no audit", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		deps.employees.EXPECT().FindByIDs(ctx, []string{id.String()}).Return(activeRoster(id), nil)
		deps.logs.EXPECT().FindByDate(ctx, date).Return(nil, nil)

		resp, err := deps.service.SaveDay(ctx, "admin-1", date, attendance.SaveDayRequest{
			Entries: []attendance.DayEntry{{EmployeeID: id.String(), Hours: hours(0), Status: "present"}},
		})
		require.NoError(t, err)
		assert.True(t, resp.NoChanges)
	})

	t.Run("uppercase employee id matches the stored record", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		upper := strings.ToUpper(id.String())
		existing := worklog.WorkLog{ID: uuid.New(), EmployeeID: id, Date: date, TotalHours: 8, Status: worklog.StatusPresent}

		deps.employees.EXPECT().FindByIDs(ctx, []string{id.String()}).Return(activeRoster(id), nil)
		deps.logs.EXPECT().FindByDate(ctx, date).Return([]worklog.WorkLog{existing}, nil)
		deps.logs.EXPECT().UpdateHoursStatus(ctx, existing.ID.String(), 4.0, worklog.StatusPresent, "admin-1").Return(nil)
		deps.audit.EXPECT().Record(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.SaveDay(ctx, "admin-1", date, attendance.SaveDayRequest{
			Entries: []attendance.DayEntry{{EmployeeID: upper, Hours: hours(4), Status: "present"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Updated)
		assert.Equal(t, 0, resp.Inserted)
	})

	t.Run("vanished record is inserted instead", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		stale := worklog.WorkLog{ID: uuid.New(), EmployeeID: id, Date: date, TotalHours: 4, Status: worklog.StatusPresent}

		deps.employees.EXPECT().FindByIDs(ctx, gomock.Any()).Return(activeRoster(id), nil)
		deps.logs.EXPECT().FindByDate(ctx, date).Return([]worklog.WorkLog{stale}, nil)
		deps.logs.EXPECT().UpdateHoursStatus(ctx, stale.ID.String(), 6.0, worklog.StatusPresent, "admin-1").
			Return(gorm.ErrRecordNotFound)
		deps.logs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.audit.EXPECT().Record(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, entry auditlog.Entry) error {
			assert.Equal(t, "0 updated, 1 inserted on 2024-03-04", entry.Details)
			return nil
		})

		resp, err := deps.service.SaveDay(ctx, "admin-1", date, attendance.SaveDayRequest{
			Entries: []attendance.DayEntry{{EmployeeID: id.String(), Hours: hours(6), Status: "present"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Inserted)
		assert.Equal(t, 0, resp.Updated)
	})

	t.Run("store failure halts batch and reports progress", func(t *testing.T) {
		deps := setupServiceTest(t)
		first, second, third := uuid.New(), uuid.New(), uuid.New()

		deps.employees.EXPECT().FindByIDs(ctx, gomock.Any()).Return(activeRoster(first, second, third), nil)
		deps.logs.EXPECT().FindByDate(ctx, date).Return(nil, nil)
		gomock.InOrder(
			deps.logs.EXPECT().Create(ctx, gomock.Any()).Return(nil),
			deps.logs.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("connection reset")),
		)
		deps.audit.EXPECT().Record(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, entry auditlog.Entry) error {
			assert.Equal(t, "Partial save: 0 updated, 1 inserted on 2024-03-04", entry.Details)
			assert.Equal(t, true, entry.Metadata["partial"])
			return nil
		})

		_, err := deps.service.SaveDay(ctx, "admin-1", date, attendance.SaveDayRequest{
			Entries: []attendance.DayEntry{
				{EmployeeID: first.String(), Hours: hours(8), Status: "present"},
				{EmployeeID: second.String(), Hours: hours(8), Status: "present"},
				{EmployeeID: third.String(), Hours: hours(8), Status: "present"},
			},
		})
		require.Error(t, err)

		var batchErr *attendance.BatchError
		require.ErrorAs(t, err, &batchErr)
		assert.Equal(t, date, batchErr.Date)
		assert.Equal(t, second.String(), batchErr.EmployeeID)
		assert.Equal(t, 1, batchErr.Inserted)
		assert.Equal(t, 0, batchErr.Updated)

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusBadGateway, httpErr.Status)
		assert.Equal(t, apperror.CodeStoreError, httpErr.Code)
		details, ok := httpErr.Details.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "connection reset", details["cause"])
	})

	t.Run("failure on first write records no audit", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		deps.employees.EXPECT().FindByIDs(ctx, gomock.Any()).Return(activeRoster(id), nil)
		deps.logs.EXPECT().FindByDate(ctx, date).Return(nil, nil)
		deps.logs.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("boom"))

		_, err := deps.service.SaveDay(ctx, "admin-1", date, attendance.SaveDayRequest{
			Entries: []attendance.DayEntry{{EmployeeID: id.String(), Hours: hours(8), Status: "present"}},
		})
		var batchErr *attendance.BatchError
		require.ErrorAs(t, err, &batchErr)
		assert.Zero(t, batchErr.Inserted)
	})

	t.Run("out of range hours rejected before any store call", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.SaveDay(ctx, "admin-1", date, attendance.SaveDayRequest{
			Entries: []attendance.DayEntry{{EmployeeID: uuid.NewString(), Hours: hours(25), Status: "present"}},
		})
		assert.ErrorIs(t, err, worklogerrors.ErrHoursOutOfRange)
	})

	t.Run("inactive employee rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		deps.employees.EXPECT().FindByIDs(ctx, gomock.Any()).
			Return([]employee.Employee{{ID: id, IsActive: false}}, nil)

		_, err := deps.service.SaveDay(ctx, "admin-1", date, attendance.SaveDayRequest{
			Entries: []attendance.DayEntry{{EmployeeID: id.String(), Hours: hours(8), Status: "present"}},
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeInactive)
	})

	t.Run("unknown employee rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.employees.EXPECT().FindByIDs(ctx, gomock.Any()).Return(nil, nil)

		_, err := deps.service.SaveDay(ctx, "admin-1", date, attendance.SaveDayRequest{
			Entries: []attendance.DayEntry{{EmployeeID: uuid.NewString(), Hours: hours(8), Status: "present"}},
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrUnknownEmployee)
	})
}

func TestAttendanceService_GetDay(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	a, b := uuid.New(), uuid.New()
	logID := uuid.New()

	deps.employees.EXPECT().FindAll(ctx, false).Return([]employee.Employee{
		{ID: a, Name: "Andi", SalaryPerHour: 30, IsActive: true},
		{ID: b, Name: "Budi", SalaryPerHour: 40, IsActive: true},
	}, nil)
	deps.logs.EXPECT().FindByDate(ctx, date).Return([]worklog.WorkLog{
		{ID: logID, EmployeeID: b, Date: date, TotalHours: 7.5, Status: worklog.StatusOvertime},
	}, nil)

	resp, err := deps.service.GetDay(ctx, date)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)

	assert.Equal(t, 0.0, resp.Rows[0].Hours)
	assert.Equal(t, worklog.StatusPresent, resp.Rows[0].Status)
	assert.Nil(t, resp.Rows[0].WorkLogID)

	assert.Equal(t, 7.5, resp.Rows[1].Hours)
	assert.Equal(t, 300.0, resp.Rows[1].Pay)
	require.NotNil(t, resp.Rows[1].WorkLogID)
	assert.Equal(t, logID.String(), *resp.Rows[1].WorkLogID)
}

func TestAttendanceService_Calendar(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	emp := uuid.New()

	deps.logs.EXPECT().FindInRange(ctx, worklog.Query{
		EmployeeID: emp.String(),
		StartDate:  "2024-02-01",
		EndDate:    "2024-02-29",
	}).Return([]worklog.WorkLog{
		{ID: uuid.New(), EmployeeID: emp, Date: "2024-02-02", TotalHours: 8, Status: worklog.StatusPresent},
	}, nil)
	deps.employees.EXPECT().FindByIDs(ctx, []string{emp.String()}).
		Return([]employee.Employee{{ID: emp, Name: "Rina"}}, nil)

	resp, err := deps.service.Calendar(ctx, attendance.CalendarQuery{Month: "2024-02", EmployeeID: emp.String()})
	require.NoError(t, err)
	assert.Equal(t, "2024-02", resp.Month)
	require.Len(t, resp.Days, 33)
	feb2 := resp.Days[5]
	assert.Equal(t, "2024-02-02", feb2.Date)
	require.Len(t, feb2.Logs, 1)
	assert.Equal(t, "Rina", feb2.Logs[0].EmployeeName)
}
