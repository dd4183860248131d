package ranking

import (
	"math"

	"github.com/foodcart/backoffice/models"
)

const earthRadiusKM = 6371.0

// DistanceKM is the great-circle (haversine) distance between two
// points in kilometers. Symmetric and deterministic for given inputs.
func DistanceKM(a, b models.Point) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

func roundKM(km float64) float64 {
	return math.Round(km*100) / 100
}
