// README: Route lookup results as served to clients.
package routing

import (
	"errors"

	"ridecompare/internal/types"
)

var (
	ErrMissingEndpoint = errors.New("origin and destination are required")
)

// Source records where a Result came from.
type Source string

const (
	SourceDirections   Source = "directions"
	SourceCache        Source = "cache"
	SourceStraightLine Source = "straight_line"
	SourceSimulated    Source = "simulated"
)

const (
	SimulatedDistanceKm  = 5.2
	SimulatedDurationMin = 18
	// SimulatedSpeedKmh is the average speed implied by the simulated route.
	SimulatedSpeedKmh = SimulatedDistanceKm / (SimulatedDurationMin / 60.0)
)

// SimulatedDestination is where the simulated route ends when no destination coordinates are known.
var SimulatedDestination = types.Point{Lat: 12.9352, Lng: 77.6245}

// Request names the endpoints as free text, coordinates, or both.
type Request struct {
	Origin           string
	Destination      string
	OriginPoint      *types.Point
	DestinationPoint *types.Point
	Waypoints        []string
}

type Result struct {
	Source       Source        `json:"source"`
	Summary      string        `json:"summary,omitempty"`
	DistanceKm   float64       `json:"distance_km"`
	DistanceText string        `json:"distance_text"`
	DurationMin  int           `json:"duration_min"`
	DurationText string        `json:"duration_text"`
	Start        types.Point   `json:"start"`
	End          types.Point   `json:"end"`
	Polyline     string        `json:"polyline"`
	Path         []types.Point `json:"path"`
}
