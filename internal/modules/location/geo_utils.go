// README: Geographic helpers (haversine distance, path length, coordinate parsing) and the default city.
package location

import (
	"math"
	"strconv"
	"strings"

	"ridecompare/internal/types"
)

const earthRadiusKm = 6371.0

// DefaultCity is used when the caller shares no location.
const DefaultCity = "Bangalore"

// Default is the centre of DefaultCity.
var Default = types.Point{Lat: 12.9716, Lng: 77.5946}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceKm is the great-circle distance between a and b.
func DistanceKm(a, b types.Point) float64 {
	return haversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
}

// PathLengthKm sums the great-circle legs of path.
func PathLengthKm(path []types.Point) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += DistanceKm(path[i-1], path[i])
	}
	return total
}

// Valid reports whether p is a finite coordinate inside the WGS84 range.
func Valid(p types.Point) bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// ParsePoint parses "lat,lng". ok is false for anything else, including out-of-range values.
func ParsePoint(s string) (types.Point, bool) {
	latStr, lngStr, found := strings.Cut(s, ",")
	if !found {
		return types.Point{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return types.Point{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return types.Point{}, false
	}
	p := types.Point{Lat: lat, Lng: lng}
	return p, Valid(p)
}

// OrDefault returns p when it is set and valid, otherwise Default.
func OrDefault(p *types.Point) types.Point {
	if p == nil || !Valid(*p) {
		return Default
	}
	return *p
}
