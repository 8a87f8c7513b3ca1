package ai

import (
	"context"

	"go.uber.org/zap"

	"ridecompare/internal/logger"
)

// FallbackParser asks Primary first and Secondary when Primary fails.
type FallbackParser struct {
	Primary   TripParser
	Secondary TripParser
}

func (f FallbackParser) ParseTripQuery(ctx context.Context, query string, hints map[string]string) (*TripQuery, error) {
	if f.Primary != nil {
		q, err := f.Primary.ParseTripQuery(ctx, query, hints)
		if err == nil {
			return q, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("primary trip parser failed", zap.Error(err))
	}
	if f.Secondary == nil {
		return nil, ErrParserUnavailable
	}
	return f.Secondary.ParseTripQuery(ctx, query, hints)
}
