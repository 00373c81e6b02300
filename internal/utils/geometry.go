package utils

import "math"

const (
	// RadiusOfEarthInMeters is the mean Earth radius used by the
	// haversine formula.
	RadiusOfEarthInMeters = 6371000.0
)

// CoordinateBounds represents a bounding box with min/max latitude and longitude
type CoordinateBounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// HaversineMeters calculates the great-circle distance between two points
// on the Earth using the spherical haversine formula.
//
// The result is a crow-flies estimate, not a road distance. Callers that
// derive travel durations from it should treat those durations as
// approximations.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	dLatRad := (lat2 - lat1) * (math.Pi / 180)
	dLonRad := (lon2 - lon1) * (math.Pi / 180)

	a := math.Pow(math.Sin(dLatRad/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(dLonRad/2), 2)
	c := 2 * math.Asin(math.Sqrt(a))

	return RadiusOfEarthInMeters * c
}

// CalculateBounds returns a bounding box centered on lat/lon that contains
// every point within distance meters.
func CalculateBounds(lat, lon, distance float64) CoordinateBounds {
	latRadians := lat * math.Pi / 180

	latRadius := RadiusOfEarthInMeters
	lonRadius := math.Cos(latRadians) * RadiusOfEarthInMeters

	latOffset := (distance / latRadius) * 180 / math.Pi
	lonOffset := (distance / lonRadius) * 180 / math.Pi

	return CoordinateBounds{
		MinLat: lat - latOffset,
		MaxLat: lat + latOffset,
		MinLon: lon - lonOffset,
		MaxLon: lon + lonOffset,
	}
}

// IsOutOfBounds returns true only if the inner bounds have no overlap
// with the outer bounds.
func IsOutOfBounds(inner, outer CoordinateBounds) bool {
	return inner.MaxLat < outer.MinLat ||
		inner.MinLat > outer.MaxLat ||
		inner.MaxLon < outer.MinLon ||
		inner.MinLon > outer.MaxLon
}
