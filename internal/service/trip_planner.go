// README: Trip planner; turns a free-text request into a parsed query and a ride comparison.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ridecompare/internal/ai"
	"ridecompare/internal/logger"
	"ridecompare/internal/modules/comparison"
	"ridecompare/internal/modules/location"
	"ridecompare/internal/modules/routing"
	"ridecompare/internal/types"
)

// Comparer is satisfied by *comparison.Service.
type Comparer interface {
	Compare(ctx context.Context, req comparison.Request) (*comparison.Comparison, error)
}

// TripPlanner orchestrates query parsing and the ride comparison.
type TripPlanner struct {
	parser  ai.TripParser
	compare Comparer
	now     func() time.Time
}

func NewTripPlanner(parser ai.TripParser, compare Comparer) *TripPlanner {
	return &TripPlanner{parser: parser, compare: compare, now: time.Now}
}

// Plan is the answer to one free-text request. Comparison is nil until the
// query names a destination.
type Plan struct {
	Query      *ai.TripQuery          `json:"query"`
	Comparison *comparison.Comparison `json:"comparison,omitempty"`
	Reply      string                 `json:"reply"`
}

// PlanTrip parses message and, when a destination was recognised, compares
// rides from the parsed pickup (or userLocation, or the city centre).
func (p *TripPlanner) PlanTrip(ctx context.Context, message string, userLocation *types.Point) (*Plan, error) {
	if p.parser == nil {
		return nil, ai.ErrParserUnavailable
	}
	here := location.OrDefault(userLocation)
	hints := map[string]string{
		"current_time":  p.now().Format(time.RFC3339),
		"user_location": here.String(),
	}

	q, err := p.parser.ParseTripQuery(ctx, message, hints)
	if err != nil {
		return nil, fmt.Errorf("parse trip query: %w", err)
	}
	plan := &Plan{Query: q, Reply: q.Reply}
	if !q.Complete() {
		return plan, nil
	}

	req := comparison.Request{
		Route: routing.Request{
			Destination: *q.Destination,
			Waypoints:   q.Stops,
		},
	}
	if q.Pickup != nil {
		req.Route.Origin = *q.Pickup
	} else {
		req.Route.OriginPoint = &here
	}
	if q.Sort != nil {
		if key, err := comparison.ParseSortKey(*q.Sort); err == nil {
			req.Sort = key
		}
	}
	if q.RideType != nil {
		if cats, err := comparison.ParseCategories(*q.RideType); err == nil {
			req.Filter.Categories = cats
		}
	}

	cmp, err := p.compare.Compare(ctx, req)
	if err != nil {
		return nil, err
	}
	plan.Comparison = cmp
	if len(cmp.Options) > 0 {
		best := cmp.Options[0]
		plan.Reply = fmt.Sprintf("%s Best by %s: %s %s at ₹%d, %d min away.",
			q.Reply, cmp.Sort, best.Provider, best.Type, best.Price, best.ETAMin)
	}
	logger.Info("trip planned",
		zap.String("destination", *q.Destination),
		zap.Float64("distance_km", cmp.DistanceKm),
		zap.Int("options", len(cmp.Options)))
	return plan, nil
}
