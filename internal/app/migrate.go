package app

import (
	"fmt"

	"github.com/jagatraya2508/absensi/internal/attendance"
	"github.com/jagatraya2508/absensi/internal/face"
	"github.com/jagatraya2508/absensi/internal/leave"
	"github.com/jagatraya2508/absensi/internal/location"
	"github.com/jagatraya2508/absensi/internal/messaging/kafka"
	"github.com/jagatraya2508/absensi/internal/offday"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables this service writes to. UserFace maps
// onto users, so only the face columns are added there.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&face.UserFace{},
		&location.Location{},
		&attendance.AttendanceEvent{},
		&offday.OffDay{},
		&leave.LeaveRequest{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(kafka.OutboxTableDDL).Error; err != nil {
		return fmt.Errorf("outbox table: %w", err)
	}
	return nil
}
