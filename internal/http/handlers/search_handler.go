// README: Free-text trip search parsing.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ridecompare/internal/ai"
	"ridecompare/internal/service"
)

const maxQueryLen = 500

type SearchHandler struct {
	parser  ai.TripParser
	planner *service.TripPlanner
	now     func() time.Time
}

func NewSearchHandler(parser ai.TripParser, planner *service.TripPlanner) *SearchHandler {
	return &SearchHandler{parser: parser, planner: planner, now: time.Now}
}

type parseReq struct {
	Query string   `json:"query"`
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
}

// Parse handles POST /api/search/parse.
func (h *SearchHandler) Parse(c *gin.Context) {
	if h.parser == nil {
		writeServiceError(c, ai.ErrParserUnavailable)
		return
	}
	req, ok := bindParseReq(c)
	if !ok {
		return
	}

	hints := map[string]string{"current_time": h.now().Format(time.RFC3339)}
	if p := point(req.Lat, req.Lng); p != nil {
		hints["user_location"] = p.String()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	q, err := h.parser.ParseTripQuery(ctx, req.Query, hints)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}

// Plan handles POST /api/search/plan: parse, then compare rides for the parsed trip.
func (h *SearchHandler) Plan(c *gin.Context) {
	if h.planner == nil {
		writeServiceError(c, ai.ErrParserUnavailable)
		return
	}
	req, ok := bindParseReq(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	plan, err := h.planner.PlanTrip(ctx, req.Query, point(req.Lat, req.Lng))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, plan)
}

func bindParseReq(c *gin.Context) (parseReq, bool) {
	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return req, false
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeError(c, http.StatusBadRequest, "missing query")
		return req, false
	}
	if len(req.Query) > maxQueryLen {
		writeError(c, http.StatusBadRequest, "query too long")
		return req, false
	}
	return req, true
}
