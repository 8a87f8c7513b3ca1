package comparison

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"ridecompare/internal/modules/pricing"
)

// Pricer is satisfied by *pricing.Service.
type Pricer interface {
	Estimate(ctx context.Context, req pricing.EstimateRequest) (pricing.Quote, error)
}

// Generator produces demo ride options around the deterministic fare formula.
// The random source is injected so callers (and tests) control reproducibility.
type Generator struct {
	pricer Pricer

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(pricer Pricer, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{pricer: pricer, rng: rng}
}

// Generate returns one option per catalogue entry in catalogue order. Each
// provider gets a single distance jitter of +/-5%, shared by its ride types.
func (g *Generator) Generate(ctx context.Context, distanceKm float64) ([]Option, error) {
	if math.IsNaN(distanceKm) || distanceKm < 0 || distanceKm > pricing.MaxDistanceKm {
		return nil, fmt.Errorf("%w: distance %v", ErrBadQuery, distanceKm)
	}

	g.mu.Lock()
	jitter := make(map[Provider]float64, 3)
	for _, p := range Providers() {
		jitter[p] = distanceKm * (1 + (g.rng.Float64()*0.1 - 0.05))
	}
	draws := make([]draw, len(catalog))
	for i, o := range catalog {
		draws[i] = g.draw(o)
	}
	g.mu.Unlock()

	out := make([]Option, 0, len(catalog))
	for i, o := range catalog {
		d := draws[i]
		km := jitter[o.provider]
		q, err := g.pricer.Estimate(ctx, pricing.EstimateRequest{
			RideType:      o.tariff,
			DistanceKm:    km,
			ApplyDiscount: o.discount,
			Surge:         d.surge,
		})
		if err != nil {
			return nil, fmt.Errorf("price %s: %w", o.display, err)
		}
		out = append(out, Option{
			ID:             o.id,
			Provider:       o.provider,
			Type:           o.display,
			Category:       o.category,
			Price:          q.Price,
			OriginalPrice:  q.OriginalPrice,
			Discount:       o.discount,
			Surge:          d.surge,
			ETAMin:         d.eta,
			DurationMin:    int(math.Floor(o.minutesPer5Km * distanceKm / 5)),
			DistanceKm:     math.Round(km*10) / 10,
			Rating:         d.rating,
			EcoScore:       d.eco,
			DriverName:     o.driver,
			VehicleDetails: o.vehicle,
			BookingURL:     bookingURLs[o.provider],
		})
	}
	return out, nil
}

type draw struct {
	surge  pricing.SurgeLevel
	eta    int
	rating float64
	eco    int
}

// draw must be called with g.mu held. The surge shown is the surge priced.
func (g *Generator) draw(o offering) draw {
	d := draw{surge: o.surgeMiss}
	if g.rng.Float64() > o.surgeAbove {
		d.surge = o.surgeHit
	}
	d.eta = o.etaMin + g.rng.IntN(o.etaSpread)
	d.rating = math.Round((o.ratingBase+g.rng.Float64()*o.ratingRange)*10) / 10
	d.eco = int(math.Round(o.ecoBase + g.rng.Float64()*o.ecoRange))
	return d
}
