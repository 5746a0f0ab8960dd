// Package geo provides great-circle distance helpers shared by the query engine and response builders.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the Haversine formula.
const EarthRadiusMeters = 6371000.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lng float64
}

// Valid reports whether the point has finite coordinates inside the WGS84 ranges.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// DistanceMeters returns the Haversine distance rounded to the nearest meter.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) int {
	return int(math.Round(haversineMeters(lat1, lng1, lat2, lng2)))
}

// DistanceKm returns the same distance as DistanceMeters in kilometers rounded to two decimals.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	return math.Round(haversineMeters(lat1, lng1, lat2, lng2)/10) / 100
}

// Between is a Point convenience wrapper around DistanceMeters.
func Between(a, b Point) int {
	return DistanceMeters(a.Lat, a.Lng, b.Lat, b.Lng)
}

// haversineMeters is the single source of truth for both units.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
