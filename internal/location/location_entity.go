package location

import (
	"time"

	"github.com/google/uuid"
)

const DefaultRadiusMeters = 100

type Location struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Address      *string   `gorm:"type:text" json:"address,omitempty"`
	Latitude     float64   `gorm:"type:double precision;not null" json:"latitude"`
	Longitude    float64   `gorm:"type:double precision;not null" json:"longitude"`
	RadiusMeters float64   `gorm:"type:double precision;not null" json:"radius_meters"`
	IsActive     bool      `gorm:"not null;index:idx_locations_active" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Location) TableName() string {
	return "attendance_locations"
}

func (l Location) Point() Point {
	return Point{Latitude: l.Latitude, Longitude: l.Longitude}
}
