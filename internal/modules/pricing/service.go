// README: Pricing service holds the live tariff table and prices quotes.
package pricing

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ridecompare/internal/logger"
)

type Service struct {
	store *Store

	mu      sync.RWMutex
	tariffs Tariffs
}

// NewService starts with the built-in rate cards. store may be nil.
func NewService(store *Store) *Service {
	return &Service{store: store, tariffs: DefaultTariffs()}
}

func (s *Service) Estimate(ctx context.Context, req EstimateRequest) (Quote, error) {
	q, _, err := s.EstimateKnown(ctx, req)
	return q, err
}

// EstimateKnown is Estimate that also reports whether the ride type had its own
// rate card in the table the quote was priced against.
func (s *Service) EstimateKnown(ctx context.Context, req EstimateRequest) (Quote, bool, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, false, err
	}
	s.mu.RLock()
	t := s.tariffs
	s.mu.RUnlock()

	_, known := t.Lookup(req.RideType)
	if !known {
		logger.Warn("unknown ride type, using default tariff", zap.String("ride_type", req.RideType))
	}
	return t.Estimate(req.RideType, req.DistanceKm, req.ApplyDiscount, req.Surge), known, nil
}

// Reload rebuilds the table from the built-in cards overlaid with stored rows.
func (s *Service) Reload(ctx context.Context) error {
	next := DefaultTariffs()
	if s.store != nil {
		rows, err := s.store.ListTariffs(ctx)
		if err != nil {
			return fmt.Errorf("reload tariffs: %w", err)
		}
		for _, r := range rows {
			next[r.RideType] = r
		}
		logger.Info("tariffs reloaded", zap.Int("overrides", len(rows)), zap.Int("total", len(next)))
	}
	s.mu.Lock()
	s.tariffs = next
	s.mu.Unlock()
	return nil
}

// Tariffs returns a copy of the live table.
func (s *Service) Tariffs() Tariffs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Tariffs, len(s.tariffs))
	for k, v := range s.tariffs {
		out[k] = v
	}
	return out
}
