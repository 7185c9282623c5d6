package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"spincraft-tracker/internal/auditlog"
	"spincraft-tracker/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	refreshRetryBackoff = time.Millisecond
}

type fakeReader struct {
	msgs      []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

type refreshCall struct{ start, end string }

// fakeRefresher fails the first failures calls, then succeeds. With failures < 0 it never
// succeeds and cancels the consumer context after cancelAfter calls.
type fakeRefresher struct {
	calls       []refreshCall
	failures    int
	cancelAfter int
	cancel      context.CancelFunc
}

func (f *fakeRefresher) RefreshSnapshots(_ context.Context, start, end string) (int, error) {
	f.calls = append(f.calls, refreshCall{start, end})
	if f.failures < 0 {
		if len(f.calls) >= f.cancelAfter {
			f.cancel()
		}
		return 0, errors.New("store down")
	}
	if len(f.calls) <= f.failures {
		return 0, errors.New("store down")
	}
	return 1, nil
}

func eventMessage(t *testing.T, offset int64, action, date string) kafkago.Message {
	t.Helper()
	return movedEventMessage(t, offset, action, date, "")
}

func movedEventMessage(t *testing.T, offset int64, action, date, previousDate string) kafkago.Message {
	t.Helper()
	ev := events.AdminActionEvent{Action: action, LogID: "log", Metadata: map[string]any{}}
	if date != "" {
		ev.Metadata["date"] = date
	}
	if previousDate != "" {
		ev.Metadata["previous_date"] = previousDate
	}
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: b}
}

func TestConsumeAdminActions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{
		eventMessage(t, 1, auditlog.ActionBulkTimeTracking, "2024-02-10"),
		{Offset: 2, Value: []byte("{not json")},
		eventMessage(t, 3, auditlog.ActionAddEmployee, ""),
		eventMessage(t, 4, auditlog.ActionDeleteWorkLog, "2024-12-31"),
	}}
	refresher := &fakeRefresher{}

	ConsumeAdminActions(ctx, reader, refresher, zap.NewNop())

	assert.Equal(t, []refreshCall{
		{"2024-02-01", "2024-02-29"},
		{"2024-12-01", "2024-12-31"},
	}, refresher.calls)
	assert.Len(t, reader.committed, 4)
}

func TestConsumeAdminActions_RetriesRefreshBeforeCommitting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{
		eventMessage(t, 1, auditlog.ActionUpdateWorkLog, "2024-03-05"),
		eventMessage(t, 2, auditlog.ActionAddWorkLog, "2024-05-02"),
	}}
	refresher := &fakeRefresher{failures: 2}

	ConsumeAdminActions(ctx, reader, refresher, zap.NewNop())

	assert.Equal(t, []refreshCall{
		{"2024-03-01", "2024-03-31"},
		{"2024-03-01", "2024-03-31"},
		{"2024-03-01", "2024-03-31"},
		{"2024-05-01", "2024-05-31"},
	}, refresher.calls)
	require.Len(t, reader.committed, 2)
	assert.Equal(t, int64(1), reader.committed[0].Offset)
	assert.Equal(t, int64(2), reader.committed[1].Offset)
}

func TestConsumeAdminActions_StopsWithoutCommittingFailedRefresh(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{
		eventMessage(t, 1, auditlog.ActionUpdateWorkLog, "2024-03-05"),
		eventMessage(t, 2, auditlog.ActionAddWorkLog, "2024-05-02"),
	}}
	refresher := &fakeRefresher{failures: -1, cancelAfter: 3, cancel: cancel}

	ConsumeAdminActions(ctx, reader, refresher, zap.NewNop())

	assert.Len(t, refresher.calls, 3)
	for _, call := range refresher.calls {
		assert.Equal(t, "2024-03-01", call.start)
	}
	assert.Empty(t, reader.committed)
	assert.Len(t, reader.msgs, 1)
}

func TestConsumeAdminActions_MovedWorkLogRefreshesBothMonths(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{
		movedEventMessage(t, 1, auditlog.ActionUpdateWorkLog, "2024-04-01", "2024-03-31"),
		movedEventMessage(t, 2, auditlog.ActionUpdateWorkLog, "2024-04-20", "2024-04-02"),
	}}
	refresher := &fakeRefresher{}

	ConsumeAdminActions(ctx, reader, refresher, zap.NewNop())

	assert.Equal(t, []refreshCall{
		{"2024-04-01", "2024-04-30"},
		{"2024-03-01", "2024-03-31"},
		{"2024-04-01", "2024-04-30"},
	}, refresher.calls)
	assert.Len(t, reader.committed, 2)
}

func TestHandleAdminAction_IgnoresMissingDate(t *testing.T) {
	refresher := &fakeRefresher{}
	n, err := handleAdminAction(context.Background(), events.AdminActionEvent{Action: auditlog.ActionAddWorkLog}, refresher)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, refresher.calls)
}

func TestAdminActionEvent_AffectedDates(t *testing.T) {
	ev := events.AdminActionEvent{Metadata: map[string]any{"date": "2024-04-01", "previous_date": "2024-03-31"}}
	assert.Equal(t, []string{"2024-04-01", "2024-03-31"}, ev.AffectedDates())

	ev.Metadata["previous_date"] = "2024-04-01"
	assert.Equal(t, []string{"2024-04-01"}, ev.AffectedDates())

	assert.Empty(t, events.AdminActionEvent{}.AffectedDates())
}
