package attendance

import "github.com/jagatraya2508/absensi/internal/face"

// SubmitForm is the multipart body of check-in and check-out. The photo is
// read separately from the "photo" file field.
type SubmitForm struct {
	Latitude       *float64 `form:"latitude" binding:"omitempty,latitude"`
	Longitude      *float64 `form:"longitude" binding:"omitempty,longitude"`
	LocationID     string   `form:"location_id" binding:"omitempty,uuid"`
	Notes          *string  `form:"notes" binding:"omitempty,max=500"`
	FaceDescriptor string   `form:"face_descriptor"`
}

type SubmitRequest struct {
	PhotoRef       string
	Latitude       *float64
	Longitude      *float64
	LocationID     string
	Notes          *string
	FaceDescriptor face.Descriptor
}

type HistoryFilter struct {
	UserID    string `form:"user_id"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	LocationID     *string `json:"location_id,omitempty"`
	Type           string  `json:"type"`
	RecordedAt     string  `json:"recorded_at"`
	AttendanceDate string  `json:"attendance_date"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	DistanceMeters *int    `json:"distance_meters,omitempty"`
	IsValid        bool    `json:"is_valid"`
	GeofenceStatus string  `json:"geofence_status"`
	PhotoRef       string  `json:"photo_ref"`
	Notes          *string `json:"notes,omitempty"`
	LocationName   *string `json:"location_name,omitempty"`
}

type SubmitResponse struct {
	AttendanceResponse
	Message string `json:"message"`
}

type TodayResponse struct {
	Date       string              `json:"date"`
	CheckedIn  bool                `json:"checked_in"`
	CheckedOut bool                `json:"checked_out"`
	CheckIn    *AttendanceResponse `json:"check_in"`
	CheckOut   *AttendanceResponse `json:"check_out"`
	IsOffDay   bool                `json:"is_off_day"`
}
