// README: Fare estimate, tariff table and surge forecast endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecompare/internal/modules/comparison"
	"ridecompare/internal/modules/pricing"
)

type FareHandler struct {
	pricing    *pricing.Service
	comparison *comparison.Service
}

func NewFareHandler(p *pricing.Service, cmp *comparison.Service) *FareHandler {
	return &FareHandler{pricing: p, comparison: cmp}
}

type estimateReq struct {
	RideType      string   `json:"ride_type"`
	DistanceKm    *float64 `json:"distance_km" binding:"required,gte=0,lte=100000"`
	ApplyDiscount bool     `json:"apply_discount"`
	SurgeLevel    string   `json:"surge_level"`
}

type estimateResp struct {
	RideType      string             `json:"ride_type"`
	DistanceKm    float64            `json:"distance_km"`
	SurgeLevel    pricing.SurgeLevel `json:"surge_level"`
	KnownRideType bool               `json:"known_ride_type"`
	Price         int64              `json:"price"`
	OriginalPrice *int64             `json:"original_price"`
}

// Estimate handles POST /api/fares/estimate.
func (h *FareHandler) Estimate(c *gin.Context) {
	var req estimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, "invalid json")
		return
	}

	surge := pricing.ParseSurgeLevel(req.SurgeLevel)
	q, known, err := h.pricing.EstimateKnown(c.Request.Context(), pricing.EstimateRequest{
		RideType:      req.RideType,
		DistanceKm:    *req.DistanceKm,
		ApplyDiscount: req.ApplyDiscount,
		Surge:         surge,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	quotesTotal.WithLabelValues(metricRideType(req.RideType, known), string(surge)).Inc()

	writeJSON(c, http.StatusOK, estimateResp{
		RideType:      req.RideType,
		DistanceKm:    *req.DistanceKm,
		SurgeLevel:    surge,
		KnownRideType: known,
		Price:         q.Price,
		OriginalPrice: q.OriginalPrice,
	})
}

// Tariffs handles GET /api/fares/tariffs.
func (h *FareHandler) Tariffs(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"booking_fee":     pricing.BookingFee,
		"discount_factor": pricing.DiscountFactor,
		"default": pricing.Tariff{
			RatePerKm:   pricing.DefaultRatePerKm,
			MinimumFare: pricing.DefaultMinimumFare,
		},
		"surge_multipliers": gin.H{
			string(pricing.SurgeLow):    pricing.SurgeLow.Multiplier(),
			string(pricing.SurgeMedium): pricing.SurgeMedium.Multiplier(),
			string(pricing.SurgeHigh):   pricing.SurgeHigh.Multiplier(),
		},
		"tariffs": h.pricing.Tariffs().Sorted(),
	})
}

// Forecast handles GET /api/fares/forecast.
func (h *FareHandler) Forecast(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"interval_minutes": int(comparison.ForecastInterval.Minutes()),
		"points":           h.comparison.Forecast(),
	})
}

// metricRideType keeps label cardinality bounded.
func metricRideType(rideType string, known bool) string {
	if !known {
		return "unknown"
	}
	return rideType
}
