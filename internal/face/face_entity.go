package face

import (
	"time"

	"github.com/google/uuid"
)

// UserFace is the slice of the identity provider's users table this service
// reads. Only the face columns are ever written.
type UserFace struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name             string     `gorm:"column:name;type:varchar(255)"`
	Email            string     `gorm:"column:email;type:text"`
	Role             string     `gorm:"column:role;type:varchar(50)"`
	FaceDescriptor   Descriptor `gorm:"column:face_descriptor;type:jsonb"`
	FaceRegisteredAt *time.Time `gorm:"column:face_registered_at"`
}

func (UserFace) TableName() string {
	return "users"
}

func (u UserFace) HasFace() bool {
	return len(u.FaceDescriptor) > 0
}
