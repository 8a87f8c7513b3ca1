// README: Route lookup with cache, Google Directions and a local fallback.
package routing

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"ridecompare/internal/logger"
	"ridecompare/internal/maps"
	"ridecompare/internal/modules/location"
	"ridecompare/internal/types"
)

// Finder is satisfied by *maps.RouteService.
type Finder interface {
	GetRoute(ctx context.Context, origin, destination string, waypoints ...string) (*maps.Route, error)
}

type Service struct {
	finder Finder
	cache  *Store
}

// NewService accepts nil for either collaborator; without a finder every lookup falls back.
func NewService(finder Finder, cache *Store) *Service {
	return &Service{finder: finder, cache: cache}
}

// Lookup never fails once the request names both endpoints: provider or cache
// errors degrade to the fallback route.
func (s *Service) Lookup(ctx context.Context, req Request) (*Result, error) {
	origin := endpoint(req.Origin, req.OriginPoint)
	destination := endpoint(req.Destination, req.DestinationPoint)
	if origin == "" || destination == "" {
		return nil, ErrMissingEndpoint
	}

	if s.finder == nil {
		return fallback(req), nil
	}

	key := CacheKey(origin, destination, req.Waypoints)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("route cache read failed", zap.String("key", key), zap.Error(err))
		} else if cached != nil {
			cached.Source = SourceCache
			return cached, nil
		}
	}

	route, err := s.finder.GetRoute(ctx, origin, destination, req.Waypoints...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("directions lookup failed, using fallback route",
			zap.String("origin", origin), zap.String("destination", destination), zap.Error(err))
		return fallback(req), nil
	}

	res := fromDirections(route, req)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res); err != nil {
			logger.Warn("route cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return res, nil
}

func endpoint(text string, p *types.Point) string {
	if t := strings.TrimSpace(text); t != "" {
		return t
	}
	if p != nil && location.Valid(*p) {
		return p.String()
	}
	return ""
}

func fromDirections(route *maps.Route, req Request) *Result {
	minutes := int(math.Round(route.Duration.Minutes()))
	res := &Result{
		Source:       SourceDirections,
		Summary:      route.Summary,
		DistanceKm:   route.DistanceKm(),
		DistanceText: route.DistanceText,
		DurationMin:  minutes,
		DurationText: durationText(minutes),
		Polyline:     route.Polyline,
		Path:         route.Path,
	}
	if len(route.Path) > 0 {
		res.Start = route.Path[0]
		res.End = route.Path[len(route.Path)-1]
	} else {
		res.Start = location.OrDefault(req.OriginPoint)
		res.End = orPoint(req.DestinationPoint, SimulatedDestination)
	}
	return res
}

// fallback uses the straight-line distance when both coordinates are known and
// the fixed simulated route otherwise.
func fallback(req Request) *Result {
	if req.OriginPoint != nil && req.DestinationPoint != nil &&
		location.Valid(*req.OriginPoint) && location.Valid(*req.DestinationPoint) {
		start, end := *req.OriginPoint, *req.DestinationPoint
		km := location.DistanceKm(start, end)
		minutes := int(math.Round(km / SimulatedSpeedKmh * 60))
		path := []types.Point{start, end}
		return &Result{
			Source:       SourceStraightLine,
			DistanceKm:   km,
			DistanceText: fmt.Sprintf("%.1f km", km),
			DurationMin:  minutes,
			DurationText: durationText(minutes),
			Start:        start,
			End:          end,
			Polyline:     maps.EncodePolyline(path),
			Path:         path,
		}
	}

	start := location.OrDefault(req.OriginPoint)
	end := orPoint(req.DestinationPoint, SimulatedDestination)
	path := []types.Point{start, end}
	return &Result{
		Source:       SourceSimulated,
		DistanceKm:   SimulatedDistanceKm,
		DistanceText: fmt.Sprintf("%.1f km", SimulatedDistanceKm),
		DurationMin:  SimulatedDurationMin,
		DurationText: durationText(SimulatedDurationMin),
		Start:        start,
		End:          end,
		Polyline:     maps.EncodePolyline(path),
		Path:         path,
	}
}

func orPoint(p *types.Point, def types.Point) types.Point {
	if p == nil || !location.Valid(*p) {
		return def
	}
	return *p
}

func durationText(minutes int) string {
	if minutes == 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d mins", minutes)
}
