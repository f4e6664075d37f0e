package events

import "time"

const (
	AttendanceRecordedTopic     = "absensi.attendance.recorded.v1"
	AttendanceRecordedEventType = "attendance.recorded"
)

type AttendanceRecordedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	AttendanceID   string    `json:"attendance_id"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"type"`
	IsValid        bool      `json:"is_valid"`
	GeofenceStatus string    `json:"geofence_status"`
	DistanceMeters *int      `json:"distance_meters,omitempty"`
	LocationName   *string   `json:"location_name,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
