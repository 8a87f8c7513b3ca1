// README: Route lookup and polyline decoding endpoints.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridecompare/internal/maps"
	"ridecompare/internal/modules/routing"
)

type RouteHandler struct {
	routes *routing.Service
}

func NewRouteHandler(routes *routing.Service) *RouteHandler {
	return &RouteHandler{routes: routes}
}

type decodeReq struct {
	Polyline  string `json:"polyline" binding:"max=100000"`
	Precision int    `json:"precision" binding:"omitempty,oneof=5 6"`
}

type decodeResp struct {
	Points [][2]float64 `json:"points"`
	Count  int          `json:"count"`
}

// Decode handles POST /api/routes/decode. Points are [lat, lng] pairs.
func (h *RouteHandler) Decode(c *gin.Context) {
	var req decodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, "invalid json")
		return
	}

	factor := maps.PolylinePrecision5
	if req.Precision == 6 {
		factor = maps.PolylinePrecision6
	}

	path, err := maps.DecodePolylineFactor(req.Polyline, factor)
	if err != nil {
		polylineDecodesTotal.WithLabelValues("malformed").Inc()
		writeServiceError(c, err)
		return
	}
	polylineDecodesTotal.WithLabelValues("ok").Inc()

	resp := decodeResp{Points: make([][2]float64, 0, len(path)), Count: len(path)}
	for _, p := range path {
		resp.Points = append(resp.Points, [2]float64{p.Lat, p.Lng})
	}
	writeJSON(c, http.StatusOK, resp)
}

// Get handles GET /api/routes?origin=&destination=.
func (h *RouteHandler) Get(c *gin.Context) {
	var q struct {
		Origin      string   `form:"origin"`
		Destination string   `form:"destination"`
		Via         string   `form:"via"`
		OriginLat   *float64 `form:"origin_lat" binding:"omitempty,gte=-90,lte=90"`
		OriginLng   *float64 `form:"origin_lng" binding:"omitempty,gte=-180,lte=180"`
		DestLat     *float64 `form:"dest_lat" binding:"omitempty,gte=-90,lte=90"`
		DestLng     *float64 `form:"dest_lng" binding:"omitempty,gte=-180,lte=180"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err, "invalid query")
		return
	}

	res, err := h.routes.Lookup(c.Request.Context(), routing.Request{
		Origin:           strings.TrimSpace(q.Origin),
		Destination:      strings.TrimSpace(q.Destination),
		OriginPoint:      point(q.OriginLat, q.OriginLng),
		DestinationPoint: point(q.DestLat, q.DestLng),
		Waypoints:        splitList(q.Via),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}
