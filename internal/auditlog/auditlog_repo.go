package auditlog

import (
	"context"
	"database/sql"
	"strings"

	"spincraft-tracker/internal/shared/connection"

	"gorm.io/gorm"
)

// Repository exposes no update or delete method.
//
//go:generate mockgen -source=auditlog_repo.go -destination=mock/auditlog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, log *AdminLog) error
	List(ctx context.Context, filter ListFilter) ([]AdminLog, error)
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

func (r *repository) Create(ctx context.Context, log *AdminLog) error {
	return r.conn(ctx).Create(log).Error
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]AdminLog, error) {
	var logs []AdminLog
	query := r.conn(ctx).Model(&AdminLog{})

	if action := strings.TrimSpace(filter.Action); action != "" {
		query = query.Where("action = ?", strings.ToUpper(action))
	}
	if q := strings.TrimSpace(strings.ToLower(filter.Q)); q != "" {
		like := "%" + q + "%"
		query = query.Where("LOWER(action) LIKE ? OR LOWER(details) LIKE ?", like, like)
	}

	err := query.
		Order("timestamp DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Find(&logs).Error
	return logs, err
}
