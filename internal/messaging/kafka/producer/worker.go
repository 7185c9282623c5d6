package producer

import (
	"context"
	"time"

	"spincraft-tracker/internal/messaging/kafka"
	"spincraft-tracker/internal/observability"

	"go.uber.org/zap"
)

const (
	outboxBatchSize     = 50
	defaultPollInterval = 3 * time.Second
)

type batchResult struct {
	Sent   int
	Failed int
}

// full reports whether a whole batch went out cleanly, meaning more rows are likely waiting.
func (b batchResult) full() bool {
	return b.Failed == 0 && b.Sent >= outboxBatchSize
}

// ProcessOutboxEvents polls the outbox until ctx is cancelled. A full batch is
// followed immediately by the next one instead of waiting for the ticker.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
		}

		for ctx.Err() == nil {
			res, err := processPendingEvents(ctx, repo, writer, log)
			if err != nil {
				log.Error("list pending outbox events", zap.Error(err))
				break
			}
			if !res.full() {
				break
			}
		}
	}
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (batchResult, error) {
	var res batchResult

	events, err := repo.ListPending(ctx, outboxBatchSize)
	if err != nil {
		return res, err
	}

	for _, event := range events {
		if deliver(ctx, repo, writer, event, logger) {
			res.Sent++
		} else {
			res.Failed++
		}
	}

	if len(events) > 0 {
		logger.Info("outbox batch done",
			zap.Int("sent", res.Sent),
			zap.Int("failed", res.Failed),
		)
	}
	return res, nil
}

// deliver publishes one event and records the outcome on its outbox row.
func deliver(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	event kafka.OutboxEvent,
	logger *zap.Logger,
) bool {
	fields := []zap.Field{
		zap.String("outbox_id", event.ID),
		zap.String("event_type", event.EventType),
		zap.String("topic", event.Topic),
	}

	if err := publishEvent(ctx, writer, event); err != nil {
		observability.OutboxEvents().WithLabelValues("failed").Inc()
		logger.Error("publish outbox event", append(fields, zap.Error(err))...)
		if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
			logger.Error("mark outbox event failed", append(fields, zap.Error(markErr))...)
		}
		return false
	}

	observability.OutboxEvents().WithLabelValues("sent").Inc()
	if err := repo.MarkSent(ctx, event.ID); err != nil {
		// The message is already on the topic; the row will be republished and
		// consumers see a duplicate.
		logger.Error("mark outbox event sent", append(fields, zap.Error(err))...)
		return false
	}

	logger.Debug("outbox event sent", fields...)
	return true
}
