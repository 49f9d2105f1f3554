package geo

import "math"

const earthRadiusMeters = 6371000.0

// metres per degree of latitude, constant enough at city scale
const metersPerDegree = 111320.0

// Distance returns the great-circle distance in metres.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Box is a coarse latitude/longitude window.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// BoxAround returns the window enclosing a circle of radiusMeters.
func BoxAround(lat, lng, radiusMeters float64) Box {
	dLat := radiusMeters / metersPerDegree
	cos := math.Cos(radians(lat))
	if cos < 1e-6 {
		cos = 1e-6
	}
	dLng := radiusMeters / (metersPerDegree * cos)
	return Box{
		MinLat: lat - dLat,
		MaxLat: lat + dLat,
		MinLng: lng - dLng,
		MaxLng: lng + dLng,
	}
}

func (b Box) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
