package geo

import "math"

// EarthRadiusKm is the mean radius of Earth used for Haversine distance.
const EarthRadiusKm = 6371.0

// kmPerDegreeLat is the locally-linear degrees-to-kilometers conversion used
// by the bounding-box pre-filter. One degree of latitude spans ~111 km.
const kmPerDegreeLat = 111.0

// HaversineKm returns the great-circle distance in kilometers between two
// points specified by latitude and longitude in degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// BoundingBox is a rectangular coordinate window around a center point. It is
// a cheap pre-filter: anything inside the exact search radius is inside the
// box, while the box may admit points slightly beyond the radius near its
// edges. The exact Haversine check runs after it.
type BoundingBox struct {
	minLat, maxLat float64
	minLon, maxLon float64
}

// NewBoundingBox builds a box of radiusKm kilometers around (lat, lon).
// The longitude span widens with 1/cos(lat), so the box degrades near the
// poles; the cosine is clamped away from zero only to avoid a division by
// zero at exactly ±90°.
func NewBoundingBox(lat, lon, radiusKm float64) BoundingBox {
	latRange := radiusKm / kmPerDegreeLat

	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 1e-9 {
		cosLat = 1e-9
	}
	lonRange := radiusKm / (kmPerDegreeLat * cosLat)

	return BoundingBox{
		minLat: lat - latRange,
		maxLat: lat + latRange,
		minLon: lon - lonRange,
		maxLon: lon + lonRange,
	}
}

// Contains reports whether the point falls inside the box (inclusive).
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.minLat && lat <= b.maxLat &&
		lon >= b.minLon && lon <= b.maxLon
}

// ValidCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
