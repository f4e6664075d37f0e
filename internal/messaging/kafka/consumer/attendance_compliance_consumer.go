package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/jagatraya2508/absensi/internal/attendance"
	"github.com/jagatraya2508/absensi/internal/events"
	"github.com/jagatraya2508/absensi/internal/location"
	"github.com/jagatraya2508/absensi/internal/notify"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// UserNames resolves a display name for a user id. An error falls back to
// the raw id.
type UserNames interface {
	NameOf(ctx context.Context, userID string) (string, error)
}

// AttendanceCompliance alerts admins about check-ins outside every geofence
// and about check-ins accepted without any active location.
func AttendanceCompliance(notifier notify.Notifier, names UserNames, logger *zap.Logger) HandlerFunc {
	log := logger.Named("kafka.consumer.attendance_compliance")
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.AttendanceRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode attendance event: %v", ErrUnprocessable, err)
		}
		if event.EventType != events.AttendanceRecordedEventType {
			return nil
		}

		status := location.GeofenceStatus(event.GeofenceStatus)
		if status != location.StatusOutside && status != location.StatusUnreferenced {
			return nil
		}

		text := complianceText(event, displayName(ctx, names, event.UserID))
		if err := notifier.Notify(ctx, text); err != nil {
			return err
		}

		log.Info("attendance compliance alert sent",
			zap.String("attendance_id", event.AttendanceID),
			zap.String("geofence_status", event.GeofenceStatus),
			zap.String("request_id", headerValue(msg, "request_id")),
		)
		return nil
	}
}

func complianceText(e events.AttendanceRecordedEvent, name string) string {
	kind := "Check-in"
	if e.Type == attendance.TypeCheckOut {
		kind = "Check-out"
	}
	at := e.OccurredAt.Format("2006-01-02 15:04 MST")

	var b strings.Builder
	switch location.GeofenceStatus(e.GeofenceStatus) {
	case location.StatusOutside:
		fmt.Fprintf(&b, "<b>%s di luar radius</b>\n", kind)
		fmt.Fprintf(&b, "Karyawan: %s\n", html.EscapeString(name))
		if e.LocationName != nil && e.DistanceMeters != nil {
			fmt.Fprintf(&b, "Jarak: %dm dari %s\n", *e.DistanceMeters, html.EscapeString(*e.LocationName))
		}
	default:
		fmt.Fprintf(&b, "<b>%s tanpa lokasi aktif</b>\n", kind)
		fmt.Fprintf(&b, "Karyawan: %s\n", html.EscapeString(name))
		b.WriteString("Tidak ada lokasi absensi aktif, data diterima tanpa validasi lokasi\n")
	}
	fmt.Fprintf(&b, "Waktu: %s", at)
	return b.String()
}

func displayName(ctx context.Context, names UserNames, userID string) string {
	if names == nil {
		return userID
	}
	name, err := names.NameOf(ctx, userID)
	if err != nil || name == "" {
		return userID
	}
	return name
}
