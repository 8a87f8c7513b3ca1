package ai

import "strings"

// TripQuery is the structured form of a spoken or typed trip request.
type TripQuery struct {
	// Pickup is nil when the user did not say where they start; callers then use
	// the current location.
	Pickup *string `json:"pickup"`

	Destination *string `json:"destination"`

	// Stops are intermediate places in travel order.
	Stops []string `json:"stops"`

	// RideType is a category hint such as "auto" or "bike".
	RideType *string `json:"ride_type,omitempty"`

	// Sort is "price", "time" or "eco" when the user expressed a preference.
	Sort *string `json:"sort,omitempty"`

	Reply string `json:"reply"`
}

// Complete reports whether the query names a destination.
func (q *TripQuery) Complete() bool {
	return q != nil && q.Destination != nil
}

// normalize blanks out empty strings and unknown enum values.
func (q *TripQuery) normalize() {
	q.Pickup = nonEmpty(q.Pickup)
	q.Destination = nonEmpty(q.Destination)
	q.RideType = nonEmpty(q.RideType)
	q.Sort = nonEmpty(q.Sort)
	if q.Sort != nil {
		switch s := strings.ToLower(*q.Sort); s {
		case "price", "time", "eco":
			q.Sort = &s
		default:
			q.Sort = nil
		}
	}
	stops := make([]string, 0, len(q.Stops))
	for _, s := range q.Stops {
		if s = strings.TrimSpace(s); s != "" {
			stops = append(stops, s)
		}
	}
	q.Stops = stops
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" || strings.EqualFold(v, "null") {
		return nil
	}
	return &v
}
