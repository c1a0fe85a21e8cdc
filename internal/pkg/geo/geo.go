package geo

import "math"

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// HaversineKm computes the great-circle distance between two coordinates in
// kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(a, b Point) float64 {
	return HaversineKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// TravelMinutes estimates door-to-door driving time for a distance using a
// flat urban-traffic factor (minutes per kilometer). The result is rounded to
// whole minutes.
func TravelMinutes(distanceKm, minutesPerKm float64) int {
	if distanceKm <= 0 {
		return 0
	}
	return int(math.Round(distanceKm * minutesPerKm))
}
