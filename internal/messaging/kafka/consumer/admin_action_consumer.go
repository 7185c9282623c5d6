package consumer

import (
	"context"
	"encoding/json"
	"time"

	"spincraft-tracker/internal/auditlog"
	"spincraft-tracker/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// SnapshotRefresher is satisfied by payroll.Service.
type SnapshotRefresher interface {
	RefreshSnapshots(ctx context.Context, startDate, endDate string) (int, error)
}

var refreshRetryBackoff = time.Second

const maxRefreshBackoff = 30 * time.Second

var workLogActions = map[string]bool{
	auditlog.ActionAddWorkLog:       true,
	auditlog.ActionUpdateWorkLog:    true,
	auditlog.ActionDeleteWorkLog:    true,
	auditlog.ActionBulkTimeTracking: true,
}

// ConsumeAdminActions keeps pending salary snapshots in step with work log edits. A
// message is committed only after its refresh succeeded; a failing refresh is retried
// until it succeeds or ctx ends, so later offsets are never committed past it.
// Undecodable messages are skipped.
func ConsumeAdminActions(
	ctx context.Context,
	reader MessageReader,
	payroll SnapshotRefresher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.admin_action")
	log.Info("admin action consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("admin action consumer stopped")
				return
			}
			log.Error("fetch admin action message failed", zap.Error(err))
			continue
		}

		var event events.AdminActionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode admin action event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		refreshed, err := refreshWithRetry(ctx, event, payroll, log)
		if err != nil {
			log.Info("admin action consumer stopped before refresh succeeded",
				zap.String("log_id", event.LogID),
				zap.Int64("offset", msg.Offset),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit admin action message failed", zap.Error(err))
			continue
		}

		if refreshed > 0 {
			log.Info("salary snapshots refreshed from admin action",
				zap.String("action", event.Action),
				zap.Strings("dates", event.AffectedDates()),
				zap.Int("refreshed", refreshed),
			)
		}
	}
}

func refreshWithRetry(ctx context.Context, event events.AdminActionEvent, payroll SnapshotRefresher, log *zap.Logger) (int, error) {
	backoff := refreshRetryBackoff
	for {
		refreshed, err := handleAdminAction(ctx, event, payroll)
		if err == nil {
			return refreshed, nil
		}
		log.Error("refresh salary snapshots failed",
			zap.String("action", event.Action),
			zap.String("log_id", event.LogID),
			zap.Duration("retry_in", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, ctx.Err()
		case <-timer.C:
		}
		backoff = min(backoff*2, maxRefreshBackoff)
	}
}

// handleAdminAction refreshes every month touched by the event, once per month.
func handleAdminAction(ctx context.Context, event events.AdminActionEvent, payroll SnapshotRefresher) (int, error) {
	if !workLogActions[event.Action] {
		return 0, nil
	}
	seen := make(map[string]bool)
	total := 0
	for _, date := range event.AffectedDates() {
		start, end, ok := monthOf(date)
		if !ok || seen[start] {
			continue
		}
		seen[start] = true
		n, err := payroll.RefreshSnapshots(ctx, start, end)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// monthOf returns the first and last day of the calendar month containing date.
func monthOf(date string) (string, string, bool) {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return "", "", false
	}
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.Format(time.DateOnly), first.AddDate(0, 1, -1).Format(time.DateOnly), true
}
