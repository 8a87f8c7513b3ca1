// README: Ride comparison endpoint.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridecompare/internal/modules/comparison"
	"ridecompare/internal/modules/routing"
	"ridecompare/internal/types"
)

type CompareHandler struct {
	svc *comparison.Service
}

func NewCompareHandler(svc *comparison.Service) *CompareHandler {
	return &CompareHandler{svc: svc}
}

type compareQuery struct {
	Pickup       string   `form:"pickup"`
	Destination  string   `form:"destination"`
	Via          string   `form:"via"`
	PickupLat    *float64 `form:"pickup_lat" binding:"omitempty,gte=-90,lte=90"`
	PickupLng    *float64 `form:"pickup_lng" binding:"omitempty,gte=-180,lte=180"`
	DestLat      *float64 `form:"dest_lat" binding:"omitempty,gte=-90,lte=90"`
	DestLng      *float64 `form:"dest_lng" binding:"omitempty,gte=-180,lte=180"`
	Distance     *float64 `form:"distance" binding:"omitempty,gte=0,lte=100000"`
	Sort         string   `form:"sort"`
	Providers    string   `form:"providers"`
	Categories   string   `form:"categories"`
	MaxPrice     int64    `form:"max_price" binding:"gte=0"`
	MaxETA       int      `form:"max_eta" binding:"gte=0"`
	MinRating    float64  `form:"min_rating" binding:"gte=0,lte=5"`
	DiscountOnly bool     `form:"discount_only"`
	EcoFriendly  bool     `form:"eco_friendly"`
}

// Compare handles GET /api/rides/compare.
func (h *CompareHandler) Compare(c *gin.Context) {
	var q compareQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err, "invalid query")
		return
	}
	req, err := q.toRequest()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	res, err := h.svc.Compare(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	for _, o := range res.Options {
		quotesTotal.WithLabelValues(o.Type, string(o.Surge)).Inc()
	}
	writeJSON(c, http.StatusOK, res)
}

func (q compareQuery) toRequest() (comparison.Request, error) {
	var req comparison.Request
	var err error

	if req.Sort, err = comparison.ParseSortKey(q.Sort); err != nil {
		return req, err
	}
	if req.Filter.Providers, err = comparison.ParseProviders(q.Providers); err != nil {
		return req, err
	}
	if req.Filter.Categories, err = comparison.ParseCategories(q.Categories); err != nil {
		return req, err
	}
	req.Filter.MaxPrice = q.MaxPrice
	req.Filter.MaxETA = q.MaxETA
	req.Filter.MinRating = q.MinRating
	req.Filter.DiscountOnly = q.DiscountOnly
	req.Filter.EcoFriendly = q.EcoFriendly

	req.DistanceKm = q.Distance
	req.Route = routing.Request{
		Origin:           strings.TrimSpace(q.Pickup),
		Destination:      strings.TrimSpace(q.Destination),
		OriginPoint:      point(q.PickupLat, q.PickupLng),
		DestinationPoint: point(q.DestLat, q.DestLng),
		Waypoints:        splitList(q.Via),
	}
	return req, nil
}

func point(lat, lng *float64) *types.Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &types.Point{Lat: *lat, Lng: *lng}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
