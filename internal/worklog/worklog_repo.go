package worklog

import (
	"context"
	"database/sql"

	"spincraft-tracker/internal/shared/connection"

	"gorm.io/gorm"
)

// Query is the store level filter. Empty fields do not constrain; a zero Limit means no cap.
type Query struct {
	EmployeeID string
	StartDate  string
	EndDate    string
	Statuses   []Status
	Limit      int
}

//go:generate mockgen -source=worklog_repo.go -destination=mock/worklog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, log *WorkLog) error
	Update(ctx context.Context, log *WorkLog) error
	UpdateHoursStatus(ctx context.Context, id string, hours float64, status Status, actorID string) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*WorkLog, error)
	FindByDate(ctx context.Context, date string) ([]WorkLog, error)
	FindInRange(ctx context.Context, q Query) ([]WorkLog, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.WithTx(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, log *WorkLog) error {
	return r.conn(ctx).Create(log).Error
}

func (r *repository) Update(ctx context.Context, log *WorkLog) error {
	return r.conn(ctx).Save(log).Error
}

// UpdateHoursStatus stamps actorID as the creator and returns gorm.ErrRecordNotFound when
// the row no longer exists.
func (r *repository) UpdateHoursStatus(ctx context.Context, id string, hours float64, status Status, actorID string) error {
	res := r.conn(ctx).
		Model(&WorkLog{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_hours": hours,
			"status":      status,
			"created_by":  actorID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&WorkLog{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*WorkLog, error) {
	var log WorkLog
	err := r.conn(ctx).First(&log, "id = ?", id).Error
	return &log, err
}

func (r *repository) FindByDate(ctx context.Context, date string) ([]WorkLog, error) {
	var logs []WorkLog
	err := r.conn(ctx).
		Where("date = ?", date).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

// FindInRange returns logs newest date first.
func (r *repository) FindInRange(ctx context.Context, q Query) ([]WorkLog, error) {
	var logs []WorkLog
	query := r.conn(ctx).Model(&WorkLog{})

	if q.EmployeeID != "" {
		query = query.Where("employee_id = ?", q.EmployeeID)
	}
	if q.StartDate != "" {
		query = query.Where("date >= ?", q.StartDate)
	}
	if q.EndDate != "" {
		query = query.Where("date <= ?", q.EndDate)
	}
	if len(q.Statuses) > 0 {
		query = query.Where("status IN ?", q.Statuses)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	err := query.
		Order("date DESC").
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
