package location

type CreateLocationRequest struct {
	Name         string   `json:"name" binding:"required,max=100"`
	Address      *string  `json:"address"`
	Latitude     *float64 `json:"latitude" binding:"required,latitude"`
	Longitude    *float64 `json:"longitude" binding:"required,longitude"`
	RadiusMeters *float64 `json:"radius_meters" binding:"omitempty,gt=0"`
	IsActive     *bool    `json:"is_active"`
}

// UpdateLocationRequest is a patch: nil fields keep their current value.
type UpdateLocationRequest struct {
	Name         *string  `json:"name" binding:"omitempty,max=100"`
	Address      *string  `json:"address"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,longitude"`
	RadiusMeters *float64 `json:"radius_meters" binding:"omitempty,gt=0"`
	IsActive     *bool    `json:"is_active"`
}

type LocationResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      *string `json:"address,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
