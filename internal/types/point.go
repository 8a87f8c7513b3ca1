// README: Shared geographic value objects used across modules.
package types

import "fmt"

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String renders the point as "lat,lng", the form Google Directions accepts as an address.
func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// Currency of every quoted fare.
const Currency = "INR"
