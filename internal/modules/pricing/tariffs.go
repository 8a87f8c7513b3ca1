// README: Static rate cards and the staged fare formula.
package pricing

import (
	"math"
	"sort"
)

// Tariffs maps ride type to rate card. Lookups are exact-match on the key.
type Tariffs map[string]Tariff

var defaultTariffs = []Tariff{
	{RideType: "UberGo", RatePerKm: 12, MinimumFare: 50},
	{RideType: "Ola Mini", RatePerKm: 13, MinimumFare: 55},
	{RideType: "Rapido Bike", RatePerKm: 8, MinimumFare: 30},
	{RideType: "UberAuto", RatePerKm: 9, MinimumFare: 35},
	{RideType: "Ola Auto", RatePerKm: 9.5, MinimumFare: 40},
	{RideType: "Uber Premier", RatePerKm: 16, MinimumFare: 80},
	{RideType: "Ola Prime", RatePerKm: 17, MinimumFare: 85},
	{RideType: "Uber XL", RatePerKm: 20, MinimumFare: 100},
	{RideType: "Ola SUV", RatePerKm: 21, MinimumFare: 110},
}

// DefaultTariffs returns a fresh copy of the built-in rate cards.
func DefaultTariffs() Tariffs {
	t := make(Tariffs, len(defaultTariffs))
	for _, tr := range defaultTariffs {
		t[tr.RideType] = tr
	}
	return t
}

// Lookup returns the rate card for rideType; ok is false when the default card was used.
func (t Tariffs) Lookup(rideType string) (Tariff, bool) {
	if tr, ok := t[rideType]; ok {
		return tr, true
	}
	return Tariff{RideType: rideType, RatePerKm: DefaultRatePerKm, MinimumFare: DefaultMinimumFare}, false
}

// Sorted lists the cards by ride type.
func (t Tariffs) Sorted() []Tariff {
	out := make([]Tariff, 0, len(t))
	for _, tr := range t {
		out = append(out, tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RideType < out[j].RideType })
	return out
}

// Estimate prices a trip. Every stage is rounded separately: distance charge,
// surge, discount. Negative or NaN distances price as zero; distances above
// MaxDistanceKm (including +Inf) price as MaxDistanceKm. Fares saturate at 2^53.
func (t Tariffs) Estimate(rideType string, distanceKm float64, applyDiscount bool, surge SurgeLevel) Quote {
	tr, _ := t.Lookup(rideType)
	distanceKm = sanitizeDistance(distanceKm)

	fare := math.Max(tr.MinimumFare, roundHalfUp(distanceKm*tr.RatePerKm))
	fare = saturate(fare + BookingFee)

	if surge != SurgeNone {
		fare = saturate(roundHalfUp(fare * surge.Multiplier()))
	}

	q := Quote{Price: int64(fare)}
	if applyDiscount {
		original := int64(fare)
		q.Price = int64(roundHalfUp(fare * DiscountFactor))
		q.OriginalPrice = &original
	}
	return q
}

// EstimateFare prices against the built-in rate cards.
func EstimateFare(rideType string, distanceKm float64, applyDiscount bool, surge SurgeLevel) Quote {
	return builtin.Estimate(rideType, distanceKm, applyDiscount, surge)
}

var builtin = DefaultTariffs()

func sanitizeDistance(km float64) float64 {
	switch {
	case math.IsNaN(km) || km < 0:
		return 0
	case km > MaxDistanceKm:
		return MaxDistanceKm
	}
	return km
}

func saturate(fare float64) float64 {
	return math.Min(fare, maxFare)
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
