// README: Tariff, surge and quote definitions for fare estimation.
package pricing

import "strings"

// Tariff is the per-ride-type rate card.
type Tariff struct {
	RideType    string  `json:"ride_type"`
	RatePerKm   float64 `json:"rate_per_km"`
	MinimumFare float64 `json:"minimum_fare"`
}

// Quote is a priced ride. OriginalPrice is set only when a discount was applied
// and carries the pre-discount price.
type Quote struct {
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"original_price"`
}

type SurgeLevel string

const (
	SurgeNone   SurgeLevel = "none"
	SurgeLow    SurgeLevel = "low"
	SurgeMedium SurgeLevel = "medium"
	SurgeHigh   SurgeLevel = "high"
)

// Multiplier is strictly increasing with severity. Unknown levels price as none.
func (l SurgeLevel) Multiplier() float64 {
	switch l {
	case SurgeLow:
		return 1.2
	case SurgeMedium:
		return 1.4
	case SurgeHigh:
		return 1.8
	default:
		return 1.0
	}
}

// ParseSurgeLevel never fails: anything unrecognised is SurgeNone.
func ParseSurgeLevel(s string) SurgeLevel {
	switch l := SurgeLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case SurgeLow, SurgeMedium, SurgeHigh:
		return l
	default:
		return SurgeNone
	}
}

const (
	// BookingFee is added to every fare after the minimum-fare floor.
	BookingFee = 25
	// DiscountFactor is the promotional price multiplier (15% off).
	DiscountFactor = 0.85

	DefaultRatePerKm   = 10.0
	DefaultMinimumFare = 40.0

	// MaxDistanceKm is the longest trip priced; longer distances price as this one.
	MaxDistanceKm = 100000.0
	// maxFare keeps every stage within the exactly representable integer range of float64.
	maxFare = 1 << 53
)

// EstimateRequest is the service-level input.
type EstimateRequest struct {
	RideType      string
	DistanceKm    float64
	ApplyDiscount bool
	Surge         SurgeLevel
}
