package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := cleanJSONString(tt.in); got != tt.want {
			t.Errorf("cleanJSONString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeTripQuery(t *testing.T) {
	raw := "```json\n" + `{"pickup":"  ","destination":"Indiranagar","stops":["MG Road",""],"ride_type":"null","sort":"Time","reply":"ok"}` + "\n```"
	q, err := decodeTripQuery(raw)
	require.NoError(t, err)

	assert.Nil(t, q.Pickup)
	require.NotNil(t, q.Destination)
	assert.Equal(t, "Indiranagar", *q.Destination)
	assert.Equal(t, []string{"MG Road"}, q.Stops)
	assert.Nil(t, q.RideType)
	require.NotNil(t, q.Sort)
	assert.Equal(t, "time", *q.Sort)
	assert.True(t, q.Complete())
}

func TestDecodeTripQuery_BadJSON(t *testing.T) {
	_, err := decodeTripQuery("I could not understand that")
	assert.Error(t, err)
}

func TestDecodeTripQuery_UnknownSortDropped(t *testing.T) {
	q, err := decodeTripQuery(`{"destination":"Airport","sort":"rating"}`)
	require.NoError(t, err)
	assert.Nil(t, q.Sort)
	assert.NotNil(t, q.Stops)
}

func TestBuildSystemPrompt(t *testing.T) {
	p := buildSystemPrompt(map[string]string{"current_time": "2026-03-01T09:00:00+05:30", "user_location": "12.97,77.59"})
	assert.Contains(t, p, "2026-03-01T09:00:00+05:30")
	assert.Contains(t, p, "12.97,77.59")

	p = buildSystemPrompt(nil)
	assert.True(t, strings.Contains(p, "UNKNOWN_TIME") && strings.Contains(p, "UNKNOWN_LOCATION"))
}

func TestRuleParser(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		pickup    string
		dest      string
		stops     []string
		sort      string
		rideType  string
		wantReply string
	}{
		{
			name:   "from to",
			query:  "from Koramangala to Indiranagar",
			pickup: "Koramangala", dest: "Indiranagar", stops: []string{},
			wantReply: "Comparing rides from Koramangala to Indiranagar.",
		},
		{
			name:   "via stops and preferences",
			query:  "Find the cheapest auto from HSR Layout to Whitefield via Marathahalli and Brookefield.",
			pickup: "HSR Layout", dest: "Whitefield", stops: []string{"Marathahalli", "Brookefield"},
			sort: "price", rideType: "auto",
		},
		{
			name:  "destination only",
			query: "fastest bike to the airport",
			dest:  "the airport", stops: []string{}, sort: "time", rideType: "bike",
			wantReply: "Comparing rides from your current location to the airport.",
		},
		{
			name:      "nothing recognised",
			query:     "hello there",
			stops:     []string{},
			wantReply: "Where would you like to go?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := RuleParser{}.ParseTripQuery(context.Background(), tt.query, nil)
			require.NoError(t, err)
			assertOptional(t, tt.pickup, q.Pickup, "pickup")
			assertOptional(t, tt.dest, q.Destination, "destination")
			assertOptional(t, tt.sort, q.Sort, "sort")
			assertOptional(t, tt.rideType, q.RideType, "ride type")
			assert.Equal(t, tt.stops, q.Stops)
			if tt.wantReply != "" {
				assert.Equal(t, tt.wantReply, q.Reply)
			}
		})
	}
}

func assertOptional(t *testing.T, want string, got *string, field string) {
	t.Helper()
	if want == "" {
		assert.Nil(t, got, field)
		return
	}
	if assert.NotNil(t, got, field) {
		assert.Equal(t, want, *got, field)
	}
}

type failingParser struct{ err error }

func (f failingParser) ParseTripQuery(context.Context, string, map[string]string) (*TripQuery, error) {
	return nil, f.err
}

func TestFallbackParser(t *testing.T) {
	p := FallbackParser{Primary: failingParser{err: assert.AnError}, Secondary: RuleParser{}}
	q, err := p.ParseTripQuery(context.Background(), "from A to B", nil)
	require.NoError(t, err)
	require.NotNil(t, q.Destination)
	assert.Equal(t, "B", *q.Destination)

	_, err = FallbackParser{Primary: failingParser{err: assert.AnError}}.ParseTripQuery(context.Background(), "x", nil)
	assert.ErrorIs(t, err, ErrParserUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.ParseTripQuery(ctx, "from A to B", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
