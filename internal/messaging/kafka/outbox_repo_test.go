package kafka

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)
	event := OutboxEvent{
		ID:            "evt-1",
		RequestID:     "req-1",
		AggregateType: "admin_log",
		AggregateID:   "log-1",
		EventType:     "BULK_TIME_TRACKING",
		Topic:         "ops.admin.audit.v1",
		Payload:       []byte(`{"action":"BULK_TIME_TRACKING"}`),
		Status:        OutboxStatusPending,
	}

	mock.ExpectExec(`INSERT INTO outbox_events`).
		WithArgs(event.ID, event.RequestID, event.AggregateType, event.AggregateID,
			event.EventType, event.Topic, event.Payload, event.Status).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateWithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO outbox_events`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewOutboxRepository(db).WithTx(tx)
	err = repo.Create(context.Background(), OutboxEvent{
		ID:      "evt-2",
		Topic:   "ops.admin.audit.v1",
		Payload: []byte(`{}`),
		Status:  OutboxStatusPending,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalidEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)
	err = repo.Create(context.Background(), OutboxEvent{ID: "evt-3", Topic: "t", Payload: []byte("x"), Status: "queued"})
	assert.ErrorContains(t, err, "invalid outbox status")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow("evt-1", "req-1", "admin_log", "log-1", "ADD_EMPLOYEE",
		"ops.admin.audit.v1", []byte(`{}`), OutboxStatusFailed, 2, now)

	mock.ExpectQuery(`SELECT(.|\n)*FROM outbox_events`).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, MaxOutboxRetries, 50).
		WillReturnRows(rows)

	events, err := NewOutboxRepository(db).ListPending(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, 2, events[0].RetryCount)
	assert.Equal(t, "ADD_EMPLOYEE", events[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)
	long := strings.Repeat("x", 600)

	mock.ExpectExec(`UPDATE outbox_events`).
		WithArgs(OutboxStatusSent, "evt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE outbox_events`).
		WithArgs(OutboxStatusFailed, long[:500], "evt-2").
		WillReturnError(errors.New("boom"))

	assert.NoError(t, repo.MarkSent(context.Background(), "evt-1"))
	assert.EqualError(t, repo.MarkFailed(context.Background(), "evt-2", long), "boom")
	assert.NoError(t, mock.ExpectationsWereMet())
}
