package ai

import (
	"context"
	"regexp"
	"strings"
)

var (
	fromToPattern = regexp.MustCompile(`(?i)^\s*(?:.*?\bfrom\s+)(.+?)\s+to\s+(.+?)(?:\s+via\s+(.+?))?\s*[.!?]?\s*$`)
	toPattern     = regexp.MustCompile(`(?i)^\s*(?:.*?\b(?:to|go to|going to|drop at)\s+)(.+?)(?:\s+via\s+(.+?))?\s*[.!?]?\s*$`)
	viaSplit      = regexp.MustCompile(`(?i)\s*(?:,|\band\b)\s*`)
)

// RuleParser handles plain "from X to Y [via Z]" requests without a model.
// It is used when no Gemini key is configured.
type RuleParser struct{}

func (RuleParser) ParseTripQuery(ctx context.Context, query string, hints map[string]string) (*TripQuery, error) {
	q := &TripQuery{Stops: []string{}}
	if m := fromToPattern.FindStringSubmatch(query); m != nil {
		q.Pickup = strPtr(m[1])
		q.Destination = strPtr(m[2])
		q.Stops = splitStops(m[3])
	} else if m := toPattern.FindStringSubmatch(query); m != nil {
		q.Destination = strPtr(m[1])
		q.Stops = splitStops(m[2])
	}

	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "cheap"):
		q.Sort = strPtr("price")
	case strings.Contains(lower, "fast") || strings.Contains(lower, "quick"):
		q.Sort = strPtr("time")
	case strings.Contains(lower, "eco") || strings.Contains(lower, "green"):
		q.Sort = strPtr("eco")
	}
	for _, rt := range []string{"bike", "auto", "sedan", "premium"} {
		if strings.Contains(lower, rt) {
			q.RideType = strPtr(rt)
			break
		}
	}

	q.normalize()
	if q.Destination == nil {
		q.Reply = "Where would you like to go?"
	} else if q.Pickup == nil {
		q.Reply = "Comparing rides from your current location to " + *q.Destination + "."
	} else {
		q.Reply = "Comparing rides from " + *q.Pickup + " to " + *q.Destination + "."
	}
	return q, nil
}

func splitStops(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return viaSplit.Split(s, -1)
}

func strPtr(s string) *string { return &s }
