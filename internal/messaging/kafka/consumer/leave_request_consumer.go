package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"html"

	"github.com/jagatraya2508/absensi/internal/events"
	"github.com/jagatraya2508/absensi/internal/leave"
	"github.com/jagatraya2508/absensi/internal/notify"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// LeaveRequested tells admins a new leave request is waiting for review.
func LeaveRequested(notifier notify.Notifier, names UserNames, logger *zap.Logger) HandlerFunc {
	log := logger.Named("kafka.consumer.leave_notifier")
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.LeaveLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode leave event: %v", ErrUnprocessable, err)
		}
		if event.EventType != events.LeaveRequestedEventType {
			return nil
		}

		label, ok := leave.TypeLabels[event.Type]
		if !ok {
			label = event.Type
		}
		text := fmt.Sprintf(
			"<b>Pengajuan %s baru</b>\nKaryawan: %s\nTanggal: %s s/d %s (%d hari)\nAlasan: %s",
			label,
			html.EscapeString(displayName(ctx, names, event.UserID)),
			event.StartDate,
			event.EndDate,
			event.TotalDays,
			html.EscapeString(event.Reason),
		)
		if err := notifier.Notify(ctx, text); err != nil {
			return err
		}

		log.Info("leave request notification sent",
			zap.String("leave_id", event.LeaveID),
			zap.String("user_id", event.UserID),
		)
		return nil
	}
}
