package attendance

import (
	"fmt"
	"math"
	"time"

	"github.com/jagatraya2508/absensi/internal/location"
)

// HasEventToday reports whether events already holds an event of eventType on
// day. day must be a calendar date as produced by dateutil.DayOf.
func HasEventToday(events []AttendanceEvent, eventType string, day time.Time) bool {
	for _, e := range events {
		if e.Type == eventType && e.AttendanceDate.Equal(day) {
			return true
		}
	}
	return false
}

func findEvent(events []AttendanceEvent, eventType string) *AttendanceEvent {
	for i := range events {
		if events[i].Type == eventType {
			return &events[i]
		}
	}
	return nil
}

func submitMessage(eventType string, ref location.Reference) string {
	if ref.Status == location.StatusOutside && ref.Location != nil && ref.Distance != nil {
		return fmt.Sprintf("Absen tercatat, namun lokasi Anda di luar radius (%dm dari %s, maksimal %dm)",
			int(math.Round(*ref.Distance)),
			ref.Location.Name,
			int(math.Round(ref.Location.RadiusMeters)),
		)
	}
	if eventType == TypeCheckOut {
		return "Check-out berhasil"
	}
	return "Check-in berhasil"
}

func roundDistance(d *float64) *int {
	if d == nil {
		return nil
	}
	v := int(math.Round(*d))
	return &v
}
