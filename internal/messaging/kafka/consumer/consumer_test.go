package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jagatraya2508/absensi/internal/events"
	"github.com/jagatraya2508/absensi/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs      []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.msgs) == 0 {
		f.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	return m, nil
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

type fakeNotifier struct {
	texts []string
	err   error
}

func (f *fakeNotifier) Notify(ctx context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	return nil
}

type fakeNames map[string]string

func (f fakeNames) NameOf(ctx context.Context, userID string) (string, error) {
	if n, ok := f[userID]; ok {
		return n, nil
	}
	return "", errors.New("not found")
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	assert.NoError(t, err)
	return b
}

func TestRun(t *testing.T) {
	t.Run("success commits handled and unprocessable messages only", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{
			msgs:   []kafkago.Message{{Offset: 1}, {Offset: 2}, {Offset: 3}},
			cancel: cancel,
		}
		handle := func(ctx context.Context, msg kafkago.Message) error {
			switch msg.Offset {
			case 2:
				return errors.New("notifier down")
			case 3:
				return consumer.ErrUnprocessable
			}
			return nil
		}

		consumer.Run(ctx, reader, "test", handle, zap.NewNop())

		assert.Equal(t, []int64{1, 3}, reader.committed)
	})
}

func TestAttendanceCompliance(t *testing.T) {
	ctx := context.Background()
	distance := 1520
	locationName := "Kantor Pusat"
	base := events.AttendanceRecordedEvent{
		EventType:    events.AttendanceRecordedEventType,
		AttendanceID: "att-1",
		UserID:       "u-1",
		Type:         "check_in",
		OccurredAt:   time.Date(2025, 1, 2, 1, 0, 0, 0, time.UTC),
	}

	t.Run("success outside alerts with distance", func(t *testing.T) {
		n := &fakeNotifier{}
		e := base
		e.GeofenceStatus = "outside"
		e.DistanceMeters = &distance
		e.LocationName = &locationName

		err := consumer.AttendanceCompliance(n, fakeNames{"u-1": "Budi"}, zap.NewNop())(ctx, kafkago.Message{Value: mustJSON(t, e)})

		assert.NoError(t, err)
		assert.Len(t, n.texts, 1)
		assert.Contains(t, n.texts[0], "Check-in di luar radius")
		assert.Contains(t, n.texts[0], "Budi")
		assert.Contains(t, n.texts[0], "1520m dari Kantor Pusat")
	})

	t.Run("success unreferenced alerts and falls back to user id", func(t *testing.T) {
		n := &fakeNotifier{}
		e := base
		e.GeofenceStatus = "unreferenced"

		err := consumer.AttendanceCompliance(n, fakeNames{}, zap.NewNop())(ctx, kafkago.Message{Value: mustJSON(t, e)})

		assert.NoError(t, err)
		assert.Contains(t, n.texts[0], "tanpa lokasi aktif")
		assert.Contains(t, n.texts[0], "u-1")
	})

	t.Run("success inside is ignored", func(t *testing.T) {
		n := &fakeNotifier{}
		e := base
		e.GeofenceStatus = "inside"

		err := consumer.AttendanceCompliance(n, nil, zap.NewNop())(ctx, kafkago.Message{Value: mustJSON(t, e)})

		assert.NoError(t, err)
		assert.Empty(t, n.texts)
	})

	t.Run("negative bad payload is unprocessable", func(t *testing.T) {
		err := consumer.AttendanceCompliance(&fakeNotifier{}, nil, zap.NewNop())(ctx, kafkago.Message{Value: []byte("{")})

		assert.ErrorIs(t, err, consumer.ErrUnprocessable)
	})

	t.Run("negative notifier error is retried", func(t *testing.T) {
		e := base
		e.GeofenceStatus = "outside"

		err := consumer.AttendanceCompliance(&fakeNotifier{err: errors.New("telegram")}, nil, zap.NewNop())(ctx, kafkago.Message{Value: mustJSON(t, e)})

		assert.EqualError(t, err, "telegram")
	})
}

func TestLeaveRequested(t *testing.T) {
	ctx := context.Background()
	e := events.LeaveLifecycleEvent{
		EventType: events.LeaveRequestedEventType,
		LeaveID:   "lv-1",
		UserID:    "u-1",
		Type:      "leave",
		Status:    "pending",
		StartDate: "2025-01-01",
		EndDate:   "2025-01-05",
		TotalDays: 5,
		Reason:    "acara <keluarga>",
	}

	t.Run("success", func(t *testing.T) {
		n := &fakeNotifier{}

		err := consumer.LeaveRequested(n, fakeNames{"u-1": "Ani"}, zap.NewNop())(ctx, kafkago.Message{Value: mustJSON(t, e)})

		assert.NoError(t, err)
		assert.Contains(t, n.texts[0], "Pengajuan Cuti baru")
		assert.Contains(t, n.texts[0], "2025-01-01 s/d 2025-01-05 (5 hari)")
		assert.Contains(t, n.texts[0], "acara &lt;keluarga&gt;")
	})

	t.Run("success status change is ignored", func(t *testing.T) {
		n := &fakeNotifier{}
		changed := e
		changed.EventType = events.LeaveStatusChangedEventType

		err := consumer.LeaveRequested(n, nil, zap.NewNop())(ctx, kafkago.Message{Value: mustJSON(t, changed)})

		assert.NoError(t, err)
		assert.Empty(t, n.texts)
	})
}
