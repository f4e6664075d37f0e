package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeLate      = "late"
	TypeSick      = "sick"
	TypeLeave     = "leave"
	TypeChangeOff = "change_off"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var TypeLabels = map[string]string{
	TypeLate:      "Izin Terlambat",
	TypeSick:      "Izin Sakit",
	TypeLeave:     "Cuti",
	TypeChangeOff: "Tukar Libur",
}

type LeaveRequest struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	Type            string     `gorm:"column:type;type:varchar(20);not null"`
	StartDate       time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate         time.Time  `gorm:"column:end_date;type:date;not null"`
	Reason          string     `gorm:"column:reason;type:text;not null"`
	AttachmentRef   *string    `gorm:"column:attachment_ref;type:text"`
	ReplacementDate *time.Time `gorm:"column:replacement_date;type:date"`
	Status          string     `gorm:"column:status;type:varchar(20);not null;default:pending;index"`
	ApprovedBy      *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	AdminNotes      *string    `gorm:"column:admin_notes;type:text"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	User            *Person    `gorm:"foreignKey:UserID;references:ID"`
	Approver        *Person    `gorm:"foreignKey:ApprovedBy;references:ID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Person is the read-only view of a users row joined into listings.
type Person struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (Person) TableName() string {
	return "users"
}
