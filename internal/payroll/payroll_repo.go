package payroll

import (
	"context"
	"database/sql"

	"spincraft-tracker/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, calc *SalaryCalculation) error
	Update(ctx context.Context, calc *SalaryCalculation) error
	FindByID(ctx context.Context, id string) (*SalaryCalculation, error)
	FindByPeriod(ctx context.Context, startDate, endDate string) ([]SalaryCalculation, error)
	FindAll(ctx context.Context, status string) ([]SalaryCalculation, error)
	FindPendingOverlapping(ctx context.Context, startDate, endDate string) ([]SalaryCalculation, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.WithTx(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, calc *SalaryCalculation) error {
	return r.conn(ctx).Create(calc).Error
}

func (r *repository) Update(ctx context.Context, calc *SalaryCalculation) error {
	return r.conn(ctx).Save(calc).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryCalculation, error) {
	var calc SalaryCalculation
	err := r.conn(ctx).First(&calc, "id = ?", id).Error
	return &calc, err
}

func (r *repository) FindByPeriod(ctx context.Context, startDate, endDate string) ([]SalaryCalculation, error) {
	var calcs []SalaryCalculation
	err := r.conn(ctx).
		Where("start_date = ? AND end_date = ?", startDate, endDate).
		Find(&calcs).Error
	return calcs, err
}

// FindAll lists snapshots newest period first. An empty status returns every row.
func (r *repository) FindAll(ctx context.Context, status string) ([]SalaryCalculation, error) {
	var calcs []SalaryCalculation
	query := r.conn(ctx).Model(&SalaryCalculation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.
		Order("end_date DESC").
		Order("created_at DESC").
		Find(&calcs).Error
	return calcs, err
}

// FindPendingOverlapping returns pending snapshots whose range intersects [startDate, endDate].
func (r *repository) FindPendingOverlapping(ctx context.Context, startDate, endDate string) ([]SalaryCalculation, error) {
	var calcs []SalaryCalculation
	err := r.conn(ctx).
		Where("status = ?", StatusPending).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Find(&calcs).Error
	return calcs, err
}
