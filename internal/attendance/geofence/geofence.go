// Package geofence decides whether a point lies within any configured fence.
package geofence

import (
	"math"

	"rollcall/internal/attendance/models"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b models.Coordinate) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// InsideAnyFence reports whether point is within the radius of at least one
// fence. An empty set contains nothing; callers that treat "no fences" as
// "no fencing" must check for it themselves.
func InsideAnyFence(point models.Coordinate, fences []models.Fence) bool {
	for _, f := range fences {
		if Distance(point, f.Center) <= f.RadiusMeters {
			return true
		}
	}
	return false
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
