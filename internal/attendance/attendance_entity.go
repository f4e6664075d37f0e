package attendance

import (
	"time"

	"github.com/jagatraya2508/absensi/internal/location"

	"github.com/google/uuid"
)

const (
	TypeCheckIn  = "check_in"
	TypeCheckOut = "check_out"
	TypeOffDay   = "off_day"
)

// AttendanceEvent is one check-in or check-out. The unique index backs the
// one-event-per-type-per-day rule when two submissions race.
type AttendanceEvent struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	UserID         uuid.UUID          `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_attendance_user_type_day,priority:1"`
	LocationID     *uuid.UUID         `gorm:"column:location_id;type:uuid"`
	Type           string             `gorm:"column:type;type:varchar(20);not null;uniqueIndex:uq_attendance_user_type_day,priority:2"`
	RecordedAt     time.Time          `gorm:"column:recorded_at;type:timestamptz;not null;index"`
	AttendanceDate time.Time          `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_user_type_day,priority:3"`
	Latitude       float64            `gorm:"column:latitude;not null"`
	Longitude      float64            `gorm:"column:longitude;not null"`
	DistanceMeters *float64           `gorm:"column:distance_meters"`
	IsValid        bool               `gorm:"column:is_valid;not null"`
	GeofenceStatus string             `gorm:"column:geofence_status;type:varchar(20);not null"`
	PhotoRef       string             `gorm:"column:photo_ref;type:text;not null"`
	Notes          *string            `gorm:"column:notes;type:text"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	Location       *location.Location `gorm:"foreignKey:LocationID;references:ID"`
	User           *UserRef           `gorm:"foreignKey:UserID;references:ID"`
}

func (AttendanceEvent) TableName() string {
	return "attendances"
}

type UserRef struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (UserRef) TableName() string {
	return "users"
}
