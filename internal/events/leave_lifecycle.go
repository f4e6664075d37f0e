package events

import "time"

const (
	LeaveLifecycleTopic = "absensi.leave.lifecycle.v1"

	LeaveRequestedEventType     = "leave.requested"
	LeaveStatusChangedEventType = "leave.status_changed"
)

type LeaveLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalDays  int       `json:"total_days"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
