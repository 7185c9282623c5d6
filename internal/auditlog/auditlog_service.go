package auditlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"spincraft-tracker/internal/events"
	"spincraft-tracker/internal/messaging/kafka"
	"spincraft-tracker/internal/observability"
	"spincraft-tracker/internal/shared/apperror"
	"spincraft-tracker/internal/shared/contextutil"
	"spincraft-tracker/internal/shared/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// Recorder appends audit entries. RecordTx joins a transaction owned by the caller so the
// entry commits together with the mutation it describes.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
	RecordTx(ctx context.Context, tx *sql.Tx, entry Entry) error
}

//go:generate mockgen -source=auditlog_service.go -destination=mock/auditlog_service_mock.go -package=mock
type Service interface {
	Recorder
	List(ctx context.Context, filter ListFilter) (ListResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	outbox       kafka.OutboxRepository
	defaultLimit int
	now          func() time.Time
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, defaultLimit int, logger ...*zap.Logger) Service {
	l := zap.L().Named("auditlog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auditlog.service")
	}
	if defaultLimit <= 0 || defaultLimit > MaxListLimit {
		defaultLimit = DefaultListLimit
	}
	return &service{
		db:           db,
		repo:         repo,
		outbox:       outbox,
		defaultLimit: defaultLimit,
		now:          time.Now,
		logger:       l,
	}
}

func (s *service) Record(ctx context.Context, entry Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record audit begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.RecordTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("record audit commit failed", zap.String("action", entry.Action), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) RecordTx(ctx context.Context, tx *sql.Tx, entry Entry) error {
	rid := contextutil.GetRequestID(ctx)
	action := strings.ToUpper(strings.TrimSpace(entry.Action))
	if action == "" {
		return apperror.RequiredField("action")
	}
	adminID := strings.TrimSpace(entry.AdminID)
	if adminID == "" {
		return apperror.RequiredField("admin_id")
	}

	log := &AdminLog{
		ID:        uuid.New(),
		Action:    action,
		Details:   sanitize.Text(entry.Details),
		AdminID:   adminID,
		Timestamp: s.now().UTC(),
	}
	if len(entry.Metadata) > 0 {
		log.Metadata = datatypes.JSONMap(entry.Metadata)
	}

	if err := s.repo.WithTx(tx).Create(ctx, log); err != nil {
		s.logger.Error("record audit persist failed",
			zap.String("request_id", rid),
			zap.String("action", action),
			zap.Error(err),
		)
		return err
	}

	if s.outbox != nil {
		event := events.AdminActionEvent{
			EventType:  "admin_action_recorded",
			RequestID:  rid,
			LogID:      log.ID.String(),
			Action:     log.Action,
			AdminID:    log.AdminID,
			Details:    log.Details,
			Metadata:   entry.Metadata,
			OccurredAt: log.Timestamp,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal audit event failed", zap.String("request_id", rid), zap.Error(err))
			return err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "admin_log",
			AggregateID:   log.ID.String(),
			EventType:     log.Action,
			Topic:         events.AdminActionTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("record audit outbox persist failed",
				zap.String("log_id", log.ID.String()),
				zap.Error(err),
			)
			return err
		}
	}

	observability.AuditEntries().WithLabelValues(log.Action).Inc()
	s.logger.Info("audit entry recorded",
		zap.String("request_id", rid),
		zap.String("action", log.Action),
		zap.String("admin_id", log.AdminID),
	)
	return nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (ListResponse, error) {
	switch {
	case filter.Limit < 0:
		return ListResponse{}, apperror.InvalidField("limit")
	case filter.Limit == 0:
		filter.Limit = s.defaultLimit
	case filter.Limit > MaxListLimit:
		filter.Limit = MaxListLimit
	}

	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return ListResponse{}, apperror.Store(err, "Failed to load audit logs")
	}

	resp := ListResponse{
		Items: make([]AdminLogResponse, len(logs)),
		Total: len(logs),
	}
	for i, l := range logs {
		resp.Items[i] = mapToResponse(l)
		resp.Counts.add(l.Action)
	}
	return resp, nil
}

func (c *ActionCounts) add(action string) {
	switch {
	case strings.Contains(action, "ADD"):
		c.Add++
	case strings.Contains(action, "UPDATE"):
		c.Update++
	case strings.Contains(action, "DELETE"):
		c.Delete++
	}
}

func mapToResponse(l AdminLog) AdminLogResponse {
	resp := AdminLogResponse{
		ID:        l.ID.String(),
		Action:    l.Action,
		Details:   l.Details,
		AdminID:   l.AdminID,
		Timestamp: l.Timestamp,
	}
	if len(l.Metadata) > 0 {
		resp.Metadata = map[string]any(l.Metadata)
	}
	return resp
}
