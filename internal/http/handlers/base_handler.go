// README: Base handler utilities (JSON helpers, error mapping, domain metrics).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"ridecompare/internal/ai"
	"ridecompare/internal/http/middleware"
	"ridecompare/internal/logger"
	"ridecompare/internal/maps"
	"ridecompare/internal/modules/comparison"
	"ridecompare/internal/modules/routing"
)

var ErrPlacesUnavailable = errors.New("places lookup unavailable")

var (
	quotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridecompare_quotes_total",
			Help: "Fare quotes served, by ride type and surge level",
		},
		[]string{"ride_type", "surge"},
	)
	polylineDecodesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridecompare_polyline_decodes_total",
			Help: "Polyline decode requests by outcome",
		},
		[]string{"result"},
	)
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps module errors to HTTP statuses. Unknown errors are
// logged and reported as 500 without detail.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, comparison.ErrBadQuery),
		errors.Is(err, comparison.ErrUnknownSort),
		errors.Is(err, routing.ErrMissingEndpoint):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, maps.ErrMalformedPolyline):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, maps.ErrPlaceNotFound), errors.Is(err, maps.ErrNoRoute):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrPlacesUnavailable), errors.Is(err, ai.ErrParserUnavailable):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "upstream timeout")
	default:
		logger.Error("request failed", zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
		middleware.ReportError(c, err)
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
