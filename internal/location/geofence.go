package location

import "math"

const EarthRadiusMeters = 6371000.0

type Point struct {
	Latitude  float64
	Longitude float64
}

type GeofenceStatus string

const (
	StatusInside       GeofenceStatus = "inside"
	StatusOutside      GeofenceStatus = "outside"
	StatusUnreferenced GeofenceStatus = "unreferenced"
)

// Distance is the haversine great-circle distance in meters.
func Distance(a, b Point) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func IsWithinRadius(p Point, loc Location) bool {
	return Distance(p, loc.Point()) <= loc.RadiusMeters
}

// NearestLocation returns the closest of active. The first one wins on a tie.
func NearestLocation(p Point, active []Location) (*Location, float64, bool) {
	var (
		nearest *Location
		best    float64
	)
	for i := range active {
		d := Distance(p, active[i].Point())
		if nearest == nil || d < best {
			nearest = &active[i]
			best = d
		}
	}
	if nearest == nil {
		return nil, 0, false
	}
	return nearest, best, true
}

// Reference is the location an attendance point is judged against.
type Reference struct {
	Location *Location
	Distance *float64
	Valid    bool
	Status   GeofenceStatus
}

// RoundedDistance is the display value of Distance in whole meters.
func (r Reference) RoundedDistance() *int {
	if r.Distance == nil {
		return nil
	}
	v := int(math.Round(*r.Distance))
	return &v
}

// ResolveReference picks the explicit location when it is active, otherwise
// the nearest active one. Without a usable location the point is accepted as
// valid with status unreferenced.
func ResolveReference(p Point, explicitID string, active []Location) Reference {
	var ref *Location
	if explicitID != "" {
		for i := range active {
			if active[i].ID.String() == explicitID {
				ref = &active[i]
				break
			}
		}
	} else {
		ref, _, _ = NearestLocation(p, active)
	}

	if ref == nil {
		return Reference{Valid: true, Status: StatusUnreferenced}
	}

	d := Distance(p, ref.Point())
	status := StatusOutside
	if d <= ref.RadiusMeters {
		status = StatusInside
	}
	return Reference{
		Location: ref,
		Distance: &d,
		Valid:    status == StatusInside,
		Status:   status,
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
