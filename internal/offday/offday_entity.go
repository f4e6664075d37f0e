package offday

import (
	"time"

	"github.com/google/uuid"
)

type OffDay struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_off_days_user_date,priority:1"`
	OffDate   time.Time `gorm:"column:off_date;type:date;not null;uniqueIndex:uq_off_days_user_date,priority:2"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (OffDay) TableName() string {
	return "off_days"
}
