package ai

import (
	"context"
	"errors"
)

var ErrParserUnavailable = errors.New("trip query parser unavailable")

// TripParser turns a free-text trip request into structured search fields.
// hints carries request context such as "current_time" and "user_location".
type TripParser interface {
	ParseTripQuery(ctx context.Context, query string, hints map[string]string) (*TripQuery, error)
}
