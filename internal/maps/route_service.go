package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"ridecompare/internal/types"
)

var ErrNoRoute = errors.New("no route found")

// Options bias Google requests toward the service's market.
type Options struct {
	Region   string
	Language string
	Country  string
}

// Route is the first Directions route, with its overview polyline already decoded.
type Route struct {
	Summary        string        `json:"summary"`
	DistanceMeters int           `json:"distance_meters"`
	DistanceText   string        `json:"distance_text"`
	Duration       time.Duration `json:"-"`
	Polyline       string        `json:"polyline"`
	Path           []types.Point `json:"path"`
}

func (r Route) DistanceKm() float64 { return float64(r.DistanceMeters) / 1000 }

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
	opts   Options
}

// NewRouteService creates a new RouteService with the given API Key.
// Extra client options are passed through (tests point WithBaseURL at a fake server).
func NewRouteService(apiKey string, opts Options, extra ...maps.ClientOption) (*RouteService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client, opts: opts}, nil
}

// GetRoute returns the driving route from origin to destination. Both may be
// addresses, place names or "lat,lng" strings. Waypoints are visited in order.
func (s *RouteService) GetRoute(ctx context.Context, origin, destination string, waypoints ...string) (*Route, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Waypoints:   waypoints,
		Mode:        maps.TravelModeDriving,
		Language:    s.opts.Language,
		Region:      s.opts.Region,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	first := routes[0]
	out := &Route{Summary: first.Summary, Polyline: first.OverviewPolyline.Points}
	for _, leg := range first.Legs {
		out.DistanceMeters += leg.Distance.Meters
		out.Duration += leg.Duration
	}
	out.DistanceText = fmt.Sprintf("%.1f km", out.DistanceKm())
	if len(first.Legs) == 1 && first.Legs[0].Distance.HumanReadable != "" {
		out.DistanceText = first.Legs[0].Distance.HumanReadable
	}

	path, err := DecodePolyline(out.Polyline)
	if err != nil {
		return nil, fmt.Errorf("overview polyline: %w", err)
	}
	out.Path = path
	return out, nil
}
