package geo

import "math"

const earthRadiusKm = 6371

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the great-circle distance between two points in
// kilometers, using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DeliveryCharge returns the flat delivery fee for a distance:
// up to 10 km costs 2.00, anything further costs 3.00.
func DeliveryCharge(distanceKm float64) float64 {
	if distanceKm <= 0 {
		return 0
	}
	if distanceKm <= 10 {
		return 2.00
	}
	return 3.00
}

func toRad(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
