package verify

import "math"

const earthRadiusKM = 6371

// HaversineKM returns the great-circle distance between two coordinates in
// kilometers. The batch analyzers use planar degree-distance for their
// coarse tolerances; the suggestion lane compares against real-world
// thresholds (1 km) where curvature matters.
func HaversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
