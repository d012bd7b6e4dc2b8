package providers

import "math"

// Mean Earth radius in miles.
const earthRadiusMiles = 3959.0

// Haversine returns the great-circle distance in miles between two
// points given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return 2 * earthRadiusMiles * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

type BoundingBox struct {
	SwLat float64
	SwLng float64
	NeLat float64
	NeLng float64
}

// BoxAround returns a lat/lng window that fully contains the circle of
// radiusMiles around the point. Used as a cheap index-friendly prefilter
// before exact haversine ranking.
func BoxAround(lat, lon, radiusMiles float64) BoundingBox {
	dLat := radiusMiles / earthRadiusMiles * 180 / math.Pi

	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	dLon := dLat / cosLat

	return BoundingBox{
		SwLat: lat - dLat,
		SwLng: lon - dLon,
		NeLat: lat + dLat,
		NeLng: lon + dLon,
	}
}
