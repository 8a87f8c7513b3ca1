// README: Comparison service resolves trip distance and builds sorted, filtered ride lists.
package comparison

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"ridecompare/internal/logger"
	"ridecompare/internal/modules/pricing"
	"ridecompare/internal/modules/routing"
)

// RouteLookup is satisfied by *routing.Service.
type RouteLookup interface {
	Lookup(ctx context.Context, req routing.Request) (*routing.Result, error)
}

type Service struct {
	gen    *Generator
	routes RouteLookup
	now    func() time.Time
}

// NewService accepts a nil routes; comparisons then use the given or default distance.
func NewService(gen *Generator, routes RouteLookup) *Service {
	return &Service{gen: gen, routes: routes, now: time.Now}
}

func (s *Service) Compare(ctx context.Context, req Request) (*Comparison, error) {
	sortKey := req.Sort
	if sortKey == "" {
		sortKey = SortPrice
	}

	res := &Comparison{Sort: sortKey, GeneratedAt: s.now().UTC()}
	switch {
	case req.DistanceKm != nil:
		d := *req.DistanceKm
		if math.IsNaN(d) || d < 0 || d > pricing.MaxDistanceKm {
			return nil, fmt.Errorf("%w: distance must be between 0 and %g km", ErrBadQuery, pricing.MaxDistanceKm)
		}
		res.DistanceKm, res.DistanceSource = d, "query"
	case s.routes != nil:
		route, err := s.routes.Lookup(ctx, req.Route)
		switch {
		case errors.Is(err, routing.ErrMissingEndpoint):
			res.DistanceKm, res.DistanceSource = DefaultDistanceKm, "default"
		case err != nil:
			return nil, err
		default:
			res.DistanceKm, res.DistanceSource, res.Route = route.DistanceKm, "route:"+string(route.Source), route
		}
	default:
		res.DistanceKm, res.DistanceSource = DefaultDistanceKm, "default"
	}

	opts, err := s.gen.Generate(ctx, res.DistanceKm)
	if err != nil {
		return nil, err
	}
	opts = req.Filter.Apply(opts)
	Sort(opts, sortKey)

	res.Options = opts
	res.Total = len(opts)
	logger.Info("comparison generated",
		zap.Float64("distance_km", res.DistanceKm),
		zap.String("distance_source", res.DistanceSource),
		zap.String("sort", string(sortKey)),
		zap.Int("options", res.Total))
	return res, nil
}

// Forecast returns the surge forecast starting now.
func (s *Service) Forecast() []ForecastPoint {
	return s.gen.Forecast(s.now().UTC())
}
