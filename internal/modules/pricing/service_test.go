package pricing

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateFare(t *testing.T) {
	tests := []struct {
		name         string
		rideType     string
		distanceKm   float64
		discount     bool
		surge        SurgeLevel
		wantPrice    int64
		wantOriginal *int64
	}{
		{
			name:       "UberGo 5.2km plain",
			rideType:   "UberGo",
			distanceKm: 5.2,
			surge:      SurgeNone,
			// max(50, round(62.4)=62) + 25
			wantPrice: 87,
		},
		{
			name:         "UberGo 5.2km discounted",
			rideType:     "UberGo",
			distanceKm:   5.2,
			discount:     true,
			surge:        SurgeNone,
			wantPrice:    74, // round(87 * 0.85 = 73.95)
			wantOriginal: ptr(87),
		},
		{
			name:       "unknown ride type uses default tariff",
			rideType:   "NoSuchType",
			distanceKm: 10,
			surge:      SurgeNone,
			wantPrice:  125,
		},
		{
			name:       "minimum fare floor",
			rideType:   "Rapido Bike",
			distanceKm: 1,
			surge:      SurgeNone,
			wantPrice:  30 + 25,
		},
		{
			name:       "half-up rounding on distance charge",
			rideType:   "Ola Auto",
			distanceKm: 7,
			surge:      SurgeNone,
			// 7 * 9.5 = 66.5 -> 67
			wantPrice: 67 + 25,
		},
		{
			name:       "low surge",
			rideType:   "UberGo",
			distanceKm: 5.2,
			surge:      SurgeLow,
			// 87 * 1.2 = 104.4
			wantPrice: 104,
		},
		{
			name:       "high surge then discount",
			rideType:   "UberGo",
			distanceKm: 5.2,
			discount:   true,
			surge:      SurgeHigh,
			// 87 * 1.8 = 156.6 -> 157; 157 * 0.85 = 133.45 -> 133
			wantPrice:    133,
			wantOriginal: ptr(157),
		},
		{
			name:       "negative distance clamps to zero",
			rideType:   "UberGo",
			distanceKm: -12,
			surge:      SurgeNone,
			wantPrice:  50 + 25,
		},
		{
			name:       "NaN distance clamps to zero",
			rideType:   "Uber XL",
			distanceKm: math.NaN(),
			surge:      SurgeNone,
			wantPrice:  100 + 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateFare(tt.rideType, tt.distanceKm, tt.discount, tt.surge)
			if got.Price != tt.wantPrice {
				t.Errorf("Price = %d, want %d", got.Price, tt.wantPrice)
			}
			switch {
			case tt.wantOriginal == nil && got.OriginalPrice != nil:
				t.Errorf("OriginalPrice = %d, want nil", *got.OriginalPrice)
			case tt.wantOriginal != nil && got.OriginalPrice == nil:
				t.Errorf("OriginalPrice = nil, want %d", *tt.wantOriginal)
			case tt.wantOriginal != nil && *got.OriginalPrice != *tt.wantOriginal:
				t.Errorf("OriginalPrice = %d, want %d", *got.OriginalPrice, *tt.wantOriginal)
			}
		})
	}
}

func TestEstimateFare_ZeroDistanceIsMinimumPlusBooking(t *testing.T) {
	for _, tr := range DefaultTariffs().Sorted() {
		got := EstimateFare(tr.RideType, 0, false, SurgeNone)
		want := int64(tr.MinimumFare) + BookingFee
		if got.Price != want {
			t.Errorf("%s: Price = %d, want %d", tr.RideType, got.Price, want)
		}
	}
}

func TestEstimateFare_MonotonicInDistance(t *testing.T) {
	surges := []SurgeLevel{SurgeNone, SurgeLow, SurgeMedium, SurgeHigh}
	for _, tr := range DefaultTariffs().Sorted() {
		for _, surge := range surges {
			for _, discount := range []bool{false, true} {
				prev := int64(math.MinInt64)
				for d := 0.0; d <= 40; d += 0.05 {
					p := EstimateFare(tr.RideType, d, discount, surge).Price
					if p < prev {
						t.Fatalf("%s surge=%s discount=%v: price dropped at %.2fkm (%d < %d)", tr.RideType, surge, discount, d, p, prev)
					}
					prev = p
				}
			}
		}
	}
}

func TestEstimateFare_HugeDistancesStayMonotonic(t *testing.T) {
	distances := []float64{40, 1e3, MaxDistanceKm - 0.01, MaxDistanceKm, MaxDistanceKm + 1, 1e15, 1e17, 1e18, 1e300, math.Inf(1)}
	for _, tr := range DefaultTariffs().Sorted() {
		for _, surge := range []SurgeLevel{SurgeNone, SurgeHigh} {
			for _, discount := range []bool{false, true} {
				prev := int64(0)
				for _, d := range distances {
					p := EstimateFare(tr.RideType, d, discount, surge).Price
					if p < prev {
						t.Fatalf("%s surge=%s discount=%v: price dropped at %gkm (%d < %d)", tr.RideType, surge, discount, d, p, prev)
					}
					prev = p
				}
			}
		}
	}
}

func TestEstimateFare_DistanceCeiling(t *testing.T) {
	atCeiling := EstimateFare("UberGo", MaxDistanceKm, false, SurgeNone)
	// 100000 * 12 + 25
	assert.Equal(t, int64(1200025), atCeiling.Price)
	assert.Equal(t, atCeiling, EstimateFare("UberGo", 1e18, false, SurgeNone))
	assert.Equal(t, atCeiling, EstimateFare("UberGo", math.Inf(1), false, SurgeNone))
}

func TestTariffs_EstimateSaturates(t *testing.T) {
	tariffs := Tariffs{"Rocket": {RideType: "Rocket", RatePerKm: 1e300, MinimumFare: 1}}
	q := tariffs.Estimate("Rocket", MaxDistanceKm, true, SurgeHigh)
	require.NotNil(t, q.OriginalPrice)
	assert.Equal(t, int64(maxFare), *q.OriginalPrice)
	assert.Positive(t, q.Price)
	assert.Less(t, q.Price, *q.OriginalPrice)
}

func TestEstimateFare_SurgeOrdering(t *testing.T) {
	for _, tr := range DefaultTariffs().Sorted() {
		for _, d := range []float64{0, 1.3, 5.2, 17.9, 42} {
			none := EstimateFare(tr.RideType, d, false, SurgeNone).Price
			low := EstimateFare(tr.RideType, d, false, SurgeLow).Price
			medium := EstimateFare(tr.RideType, d, false, SurgeMedium).Price
			high := EstimateFare(tr.RideType, d, false, SurgeHigh).Price
			if !(none < low && low < medium && medium < high) {
				t.Errorf("%s @%.1fkm: want strictly increasing, got %d %d %d %d", tr.RideType, d, none, low, medium, high)
			}
		}
	}
}

func TestEstimateFare_DiscountMatchesUndiscounted(t *testing.T) {
	for _, tr := range DefaultTariffs().Sorted() {
		for _, surge := range []SurgeLevel{SurgeNone, SurgeLow, SurgeMedium, SurgeHigh} {
			for _, d := range []float64{0, 2.5, 5.2, 11.11, 30} {
				plain := EstimateFare(tr.RideType, d, false, surge)
				disc := EstimateFare(tr.RideType, d, true, surge)
				require.NotNil(t, disc.OriginalPrice)
				assert.Equal(t, plain.Price, *disc.OriginalPrice)
				assert.Equal(t, int64(math.Floor(float64(plain.Price)*DiscountFactor+0.5)), disc.Price)
			}
		}
	}
}

func TestParseSurgeLevel(t *testing.T) {
	tests := map[string]SurgeLevel{
		"":        SurgeNone,
		"none":    SurgeNone,
		"low":     SurgeLow,
		" Medium": SurgeMedium,
		"HIGH":    SurgeHigh,
		"extreme": SurgeNone,
	}
	for in, want := range tests {
		if got := ParseSurgeLevel(in); got != want {
			t.Errorf("ParseSurgeLevel(%q) = %q, want %q", in, got, want)
		}
	}
	assert.Equal(t, 1.0, SurgeLevel("bogus").Multiplier())
}

func TestTariffs_Lookup(t *testing.T) {
	tariffs := DefaultTariffs()

	tr, ok := tariffs.Lookup("Ola SUV")
	assert.True(t, ok)
	assert.Equal(t, 21.0, tr.RatePerKm)

	tr, ok = tariffs.Lookup("uberGo")
	assert.False(t, ok, "lookups are case-sensitive")
	assert.Equal(t, DefaultRatePerKm, tr.RatePerKm)
	assert.Equal(t, DefaultMinimumFare, tr.MinimumFare)
}

func TestService_Estimate(t *testing.T) {
	s := NewService(nil)

	got, err := s.Estimate(context.Background(), EstimateRequest{RideType: "UberGo", DistanceKm: 5.2})
	require.NoError(t, err)
	assert.Equal(t, int64(87), got.Price)
	assert.Nil(t, got.OriginalPrice)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Estimate(ctx, EstimateRequest{RideType: "UberGo", DistanceKm: 5.2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_EstimateKnown(t *testing.T) {
	s := NewService(nil)

	q, known, err := s.EstimateKnown(context.Background(), EstimateRequest{RideType: "Ola Mini", DistanceKm: 3})
	require.NoError(t, err)
	assert.True(t, known)
	// max(55, 39) + 25
	assert.Equal(t, int64(80), q.Price)

	q, known, err = s.EstimateKnown(context.Background(), EstimateRequest{RideType: "Meru Cab", DistanceKm: 10})
	require.NoError(t, err)
	assert.False(t, known)
	assert.Equal(t, int64(125), q.Price)
}

func TestService_ReloadWithoutStoreKeepsDefaults(t *testing.T) {
	s := NewService(nil)
	require.NoError(t, s.Reload(context.Background()))
	assert.Len(t, s.Tariffs(), len(defaultTariffs))
}

func TestService_TariffsReturnsCopy(t *testing.T) {
	s := NewService(nil)
	cp := s.Tariffs()
	cp["UberGo"] = Tariff{RideType: "UberGo", RatePerKm: 1, MinimumFare: 1}

	got, err := s.Estimate(context.Background(), EstimateRequest{RideType: "UberGo", DistanceKm: 5.2})
	require.NoError(t, err)
	assert.Equal(t, int64(87), got.Price)
}

func TestService_ConcurrentEstimateAndReload(t *testing.T) {
	s := NewService(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Estimate(context.Background(), EstimateRequest{RideType: "Ola Mini", DistanceKm: 3})
		}()
		go func() {
			defer wg.Done()
			_ = s.Reload(context.Background())
		}()
	}
	wg.Wait()
}

func ptr(v int64) *int64 { return &v }
