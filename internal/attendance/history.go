package attendance

import (
	"sort"
	"time"

	"github.com/jagatraya2508/absensi/internal/offday"
	"github.com/jagatraya2508/absensi/internal/shared/dateutil"
)

const offDayNotes = "Hari Libur"

// HistoryRecord is one row of the attendance timeline: a real event or an
// off-day marker.
type HistoryRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserName       *string   `json:"user_name,omitempty"`
	Type           string    `json:"type"`
	RecordedAt     time.Time `json:"recorded_at"`
	AttendanceDate string    `json:"attendance_date"`
	LocationID     *string   `json:"location_id,omitempty"`
	LocationName   *string   `json:"location_name,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	DistanceMeters *int      `json:"distance_meters,omitempty"`
	IsValid        *bool     `json:"is_valid,omitempty"`
	GeofenceStatus string    `json:"geofence_status,omitempty"`
	PhotoRef       *string   `json:"photo_ref,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	IsOffDay       bool      `json:"is_off_day"`
}

// MergeHistory appends offDays after events and orders the result newest
// first. Records with equal timestamps keep their input order.
func MergeHistory(events []HistoryRecord, offDays []HistoryRecord) []HistoryRecord {
	merged := make([]HistoryRecord, 0, len(events)+len(offDays))
	merged = append(merged, events...)
	merged = append(merged, offDays...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].RecordedAt.After(merged[j].RecordedAt)
	})
	return merged
}

func eventRecord(e AttendanceEvent) HistoryRecord {
	lat, lon, valid := e.Latitude, e.Longitude, e.IsValid
	photo := e.PhotoRef
	rec := HistoryRecord{
		ID:             e.ID.String(),
		UserID:         e.UserID.String(),
		Type:           e.Type,
		RecordedAt:     e.RecordedAt,
		AttendanceDate: dateutil.Format(e.AttendanceDate),
		Latitude:       &lat,
		Longitude:      &lon,
		DistanceMeters: roundDistance(e.DistanceMeters),
		IsValid:        &valid,
		GeofenceStatus: e.GeofenceStatus,
		PhotoRef:       &photo,
		Notes:          e.Notes,
	}
	if e.LocationID != nil {
		id := e.LocationID.String()
		rec.LocationID = &id
	}
	if e.Location != nil {
		name := e.Location.Name
		rec.LocationName = &name
	}
	if e.User != nil {
		name := e.User.Name
		rec.UserName = &name
	}
	return rec
}

// offDayRecord renders an off-day as a pseudo event at local midnight.
func offDayRecord(o offday.OffDay, loc *time.Location) HistoryRecord {
	if loc == nil {
		loc = time.UTC
	}
	date := dateutil.Format(o.OffDate)
	y, m, d := o.OffDate.Date()
	notes := offDayNotes

	return HistoryRecord{
		ID:             "off_" + o.UserID.String() + "_" + date,
		UserID:         o.UserID.String(),
		Type:           TypeOffDay,
		RecordedAt:     time.Date(y, m, d, 0, 0, 0, 0, loc),
		AttendanceDate: date,
		Notes:          &notes,
		IsOffDay:       true,
	}
}
