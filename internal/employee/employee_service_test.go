package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"spincraft-tracker/internal/auditlog"
	auditMock "spincraft-tracker/internal/auditlog/mock"
	"spincraft-tracker/internal/employee"
	employeeerrors "spincraft-tracker/internal/employee/errors"
	employeeMock "spincraft-tracker/internal/employee/mock"
	"spincraft-tracker/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	audit     *auditMock.MockRecorder
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	t.Cleanup(func() { db.Close() })
	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	audit := auditMock.NewMockRecorder(ctrl)

	svc := employee.NewService(db, repo, audit, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		audit:     audit,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func rate(v float64) *float64 { return &v }

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success writes employee and audit in one tx", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{
			Name:          "  Rina <i>Putri</i> ",
			Gender:        "female",
			JoiningDate:   "2024-01-15",
			SalaryPerHour: rate(50),
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			assert.Equal(t, "Rina Putri", e.Name)
			assert.True(t, e.IsActive)
			assert.Equal(t, 50.0, e.SalaryPerHour)
			assert.NotEqual(t, uuid.Nil, e.ID)
			return nil
		})
		deps.audit.EXPECT().RecordTx(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sql.Tx, entry auditlog.Entry) error {
				assert.Equal(t, auditlog.ActionAddEmployee, entry.Action)
				assert.Equal(t, "Added new employee: Rina Putri", entry.Details)
				assert.Equal(t, "admin-1", entry.AdminID)
				return nil
			})
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Create(ctx, "admin-1", req)
		require.NoError(t, err)
		assert.Equal(t, "Rina Putri", resp.Name)
		assert.True(t, resp.IsActive)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("negative rate rejected before any write", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, "admin-1", employee.CreateEmployeeRequest{
			Name: "Budi", Gender: "male", JoiningDate: "2024-01-15", SalaryPerHour: rate(-1),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrNegativeRate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid joining date", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, "admin-1", employee.CreateEmployeeRequest{
			Name: "Budi", Gender: "male", JoiningDate: "15/01/2024", SalaryPerHour: rate(10),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidJoiningDate)
	})

	t.Run("name empty after sanitizing", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, "admin-1", employee.CreateEmployeeRequest{
			Name: "<script>x</script>", Gender: "male", JoiningDate: "2024-01-15", SalaryPerHour: rate(10),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrMissingName)
	})

	t.Run("audit failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.audit.EXPECT().RecordTx(ctx, gomock.Any(), gomock.Any()).Return(errors.New("audit down"))

		_, err := deps.service.Create(ctx, "admin-1", employee.CreateEmployeeRequest{
			Name: "Budi", Gender: "male", JoiningDate: "2024-01-15", SalaryPerHour: rate(10),
		})
		assert.EqualError(t, err, "audit down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.Equal(t, apperror.CodeNotFound, apperror.ToHTTP(err).Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	id := uuid.New()
	active := false

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{
		ID: id, Name: "Budi", Gender: "male", JoiningDate: "2023-05-01", SalaryPerHour: 40, IsActive: true,
	}, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
		assert.Equal(t, 45.5, e.SalaryPerHour)
		assert.False(t, e.IsActive)
		return nil
	})
	deps.audit.EXPECT().RecordTx(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sql.Tx, entry auditlog.Entry) error {
			assert.Equal(t, auditlog.ActionUpdateEmployee, entry.Action)
			assert.Equal(t, "Updated employee: Budi Santoso", entry.Details)
			return nil
		})
	deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

	resp, err := deps.service.Update(ctx, "admin-1", id.String(), employee.UpdateEmployeeRequest{
		Name: "Budi Santoso", Gender: "male", JoiningDate: "2023-05-01", SalaryPerHour: rate(45.5), IsActive: &active,
	})
	require.NoError(t, err)
	assert.Equal(t, 45.5, resp.SalaryPerHour)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEmployeeService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("soft deletes and audits", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{ID: id, Name: "Budi", IsActive: true}, nil)
		deps.repo.EXPECT().Deactivate(ctx, id.String()).Return(nil)
		deps.audit.EXPECT().RecordTx(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sql.Tx, entry auditlog.Entry) error {
				assert.Equal(t, auditlog.ActionDeleteEmployee, entry.Action)
				assert.Equal(t, "Deactivated employee: Budi", entry.Details)
				return nil
			})
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		require.NoError(t, deps.service.Deactivate(ctx, "admin-1", id.String()))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Deactivate(ctx, "admin-1", id)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetOptionsCachesRoster(t *testing.T) {
	ctrl := gomock.NewController(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	db, _, _ := sqlmock.New()
	t.Cleanup(func() { db.Close() })

	repo := employeeMock.NewMockRepository(ctrl)
	svc := employee.NewService(db, repo, auditMock.NewMockRecorder(ctrl), rdb)
	ctx := context.Background()

	repo.EXPECT().FindAll(ctx, false).Return([]employee.Employee{
		{ID: uuid.New(), Name: "Andi", IsActive: true, SalaryPerHour: 30},
		{ID: uuid.New(), Name: "Sari", IsActive: true, SalaryPerHour: 35},
	}, nil).Times(1)

	first, err := svc.GetOptions(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.True(t, mr.Exists(employee.EmployeeOptionsKey))

	second, err := svc.GetOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
