package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridecompare/internal/ai"
	"ridecompare/internal/modules/comparison"
	"ridecompare/internal/modules/location"
)

type recordingComparer struct {
	got  []comparison.Request
	resp *comparison.Comparison
	err  error
}

func (r *recordingComparer) Compare(_ context.Context, req comparison.Request) (*comparison.Comparison, error) {
	r.got = append(r.got, req)
	return r.resp, r.err
}

func fixedPlanner(parser ai.TripParser, cmp Comparer) *TripPlanner {
	p := NewTripPlanner(parser, cmp)
	p.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return p
}

func TestPlanTrip_FromTo(t *testing.T) {
	cmp := &recordingComparer{resp: &comparison.Comparison{
		Sort:       comparison.SortPrice,
		DistanceKm: 6.1,
		Options: []comparison.Option{
			{Provider: comparison.ProviderRapido, Type: "Bike", Price: 79, ETAMin: 3},
		},
	}}
	p := fixedPlanner(ai.RuleParser{}, cmp)

	plan, err := p.PlanTrip(context.Background(), "cheapest bike from Koramangala to Indiranagar via MG Road", nil)
	require.NoError(t, err)
	require.Len(t, cmp.got, 1)

	req := cmp.got[0]
	assert.Equal(t, "Koramangala", req.Route.Origin)
	assert.Nil(t, req.Route.OriginPoint)
	assert.Equal(t, "Indiranagar", req.Route.Destination)
	assert.Equal(t, []string{"MG Road"}, req.Route.Waypoints)
	assert.Equal(t, comparison.SortPrice, req.Sort)
	assert.Equal(t, []comparison.Category{comparison.CategoryBike}, req.Filter.Categories)

	require.NotNil(t, plan.Comparison)
	assert.Contains(t, plan.Reply, "Rapido Bike at ₹79")
}

func TestPlanTrip_UsesCallerLocationWithoutPickup(t *testing.T) {
	cmp := &recordingComparer{resp: &comparison.Comparison{}}
	p := fixedPlanner(ai.RuleParser{}, cmp)

	_, err := p.PlanTrip(context.Background(), "take me to the airport", nil)
	require.NoError(t, err)
	require.Len(t, cmp.got, 1)
	require.NotNil(t, cmp.got[0].Route.OriginPoint)
	assert.Equal(t, location.Default, *cmp.got[0].Route.OriginPoint)
	assert.Empty(t, cmp.got[0].Route.Origin)
}

func TestPlanTrip_NoDestination(t *testing.T) {
	cmp := &recordingComparer{}
	p := fixedPlanner(ai.RuleParser{}, cmp)

	plan, err := p.PlanTrip(context.Background(), "hello there", nil)
	require.NoError(t, err)
	assert.Nil(t, plan.Comparison)
	assert.Empty(t, cmp.got)
	assert.Equal(t, "Where would you like to go?", plan.Reply)
}

func TestPlanTrip_Errors(t *testing.T) {
	p := fixedPlanner(nil, &recordingComparer{})
	_, err := p.PlanTrip(context.Background(), "from A to B", nil)
	assert.ErrorIs(t, err, ai.ErrParserUnavailable)

	boom := errors.New("compare failed")
	p = fixedPlanner(ai.RuleParser{}, &recordingComparer{err: boom})
	_, err = p.PlanTrip(context.Background(), "from A to B", nil)
	assert.ErrorIs(t, err, boom)
}
