// README: Comparison model (provider offerings, generated ride options, forecast points).
package comparison

import (
	"errors"
	"time"

	"ridecompare/internal/modules/pricing"
	"ridecompare/internal/modules/routing"
)

var (
	ErrBadQuery    = errors.New("bad comparison query")
	ErrUnknownSort = errors.New("unknown sort key")
)

// DefaultDistanceKm is priced when neither a distance nor a route is available.
const DefaultDistanceKm = 5.2

type Provider string

const (
	ProviderUber   Provider = "Uber"
	ProviderOla    Provider = "Ola"
	ProviderRapido Provider = "Rapido"
)

type Category string

const (
	CategorySedan   Category = "sedan"
	CategoryAuto    Category = "auto"
	CategoryBike    Category = "bike"
	CategoryPremium Category = "premium"
)

// Option is one priced ride in a comparison.
type Option struct {
	ID             int                `json:"id"`
	Provider       Provider           `json:"provider"`
	Type           string             `json:"type"`
	Category       Category           `json:"category"`
	Price          int64              `json:"price"`
	OriginalPrice  *int64             `json:"original_price"`
	Discount       bool               `json:"discount"`
	Surge          pricing.SurgeLevel `json:"surge_status"`
	ETAMin         int                `json:"eta_min"`
	DurationMin    int                `json:"duration_min"`
	DistanceKm     float64            `json:"distance_km"`
	Rating         float64            `json:"rating"`
	EcoScore       int                `json:"eco_score"`
	DriverName     string             `json:"driver_name"`
	VehicleDetails string             `json:"vehicle_details"`
	BookingURL     string             `json:"booking_url"`
}

type SortKey string

const (
	SortPrice SortKey = "price"
	SortTime  SortKey = "time"
	SortEco   SortKey = "eco"
)

// Filter keeps options that satisfy every non-zero field.
type Filter struct {
	Providers    []Provider
	Categories   []Category
	MaxPrice     int64
	MaxETA       int
	MinRating    float64
	DiscountOnly bool
	EcoFriendly  bool
}

// Request describes one comparison. DistanceKm wins over Route when set.
type Request struct {
	DistanceKm *float64
	Route      routing.Request
	Sort       SortKey
	Filter     Filter
}

// Comparison is the answer to a Request.
type Comparison struct {
	DistanceKm     float64         `json:"distance_km"`
	DistanceSource string          `json:"distance_source"`
	Route          *routing.Result `json:"route,omitempty"`
	Sort           SortKey         `json:"sort"`
	Options        []Option        `json:"options"`
	Total          int             `json:"total"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// ForecastPoint is the expected price per provider at Time.
type ForecastPoint struct {
	Time   time.Time `json:"time"`
	Factor float64   `json:"factor"`
	Uber   int64     `json:"uber"`
	Ola    int64     `json:"ola"`
	Rapido int64     `json:"rapido"`
}
