package geo

import "math"

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the great-circle distance between two points in
// kilometers using the spherical law of cosines. Radius eligibility is an
// approximate check, so this is accurate enough and cheaper than routing.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	theta := lon1 - lon2
	arg := math.Sin(deg2rad(lat1))*math.Sin(deg2rad(lat2)) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*math.Cos(deg2rad(theta))
	// Identical points can drift just above 1.0 and turn Acos into NaN.
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	dist := rad2deg(math.Acos(arg))
	miles := dist * 60 * 1.1515
	return miles * 1.609344
}

func deg2rad(deg float64) float64 { return deg * math.Pi / 180 }

func rad2deg(rad float64) float64 { return rad * 180 / math.Pi }

// ValidCoords reports whether the pair is a usable WGS84 coordinate.
func ValidCoords(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
