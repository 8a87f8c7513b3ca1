// README: Circuit breaker around the directions provider; an open breaker sends lookups straight to the fallback.
package routing

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"ridecompare/internal/logger"
	"ridecompare/internal/maps"
)

var breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "ridecompare_breaker_state",
	Help: "Circuit breaker state (0=closed, 0.5=half-open, 1=open)",
}, []string{"breaker"})

type BreakerConfig struct {
	// Failures is the number of consecutive failures that opens the breaker.
	Failures uint32
	// Cooldown is how long the breaker stays open before probing again.
	Cooldown time.Duration
}

// BreakerFinder guards a Finder with a circuit breaker.
type BreakerFinder struct {
	next Finder
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerFinder(name string, next Finder, cfg BreakerConfig) *BreakerFinder {
	if cfg.Failures == 0 {
		cfg.Failures = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	breakerState.WithLabelValues(name).Set(0)
	return &BreakerFinder{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: cfg.Cooldown,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= cfg.Failures
			},
			// A route that does not exist or a caller that gave up says nothing about provider health.
			IsSuccessful: func(err error) bool {
				return err == nil ||
					errors.Is(err, maps.ErrNoRoute) ||
					errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				breakerState.WithLabelValues(name).Set(stateValue(to))
				logger.Warn("circuit breaker state changed",
					zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
			},
		}),
	}
}

func (b *BreakerFinder) GetRoute(ctx context.Context, origin, destination string, waypoints ...string) (*maps.Route, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.GetRoute(ctx, origin, destination, waypoints...)
	})
	if err != nil {
		return nil, err
	}
	return out.(*maps.Route), nil
}

// State reports the breaker state name (closed, half-open, open).
func (b *BreakerFinder) State() string {
	return b.cb.State().String()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 0.5
	default:
		return 0
	}
}
