package comparison

import (
	"math"
	"time"
)

const (
	ForecastPoints   = 12
	ForecastInterval = 15 * time.Minute

	uberForecastBase   = 249
	olaForecastBase    = 275
	rapidoForecastBase = 165
)

// Forecast predicts a surge that is high now, easing after 30 minutes and
// normal after an hour.
func (g *Generator) Forecast(now time.Time) []ForecastPoint {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]ForecastPoint, 0, ForecastPoints)
	for i := 0; i < ForecastPoints; i++ {
		var f float64
		switch {
		case i < 2:
			f = 1.5 - g.rng.Float64()*0.1
		case i < 4:
			f = 1.3 - g.rng.Float64()*0.1
		default:
			f = 1.0 + g.rng.Float64()*0.2
		}
		out = append(out, ForecastPoint{
			Time:   now.Add(time.Duration(i) * ForecastInterval),
			Factor: math.Round(f*100) / 100,
			Uber:   int64(math.Round(uberForecastBase * f)),
			Ola:    int64(math.Round(olaForecastBase * (f - 0.05))),
			Rapido: int64(math.Round(rapidoForecastBase * (f + 0.1))),
		})
	}
	return out
}
