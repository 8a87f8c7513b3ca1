// README: Place autocomplete, details and geocoding endpoints.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridecompare/internal/maps"
)

// PlacesAPI is satisfied by *maps.PlacesService.
type PlacesAPI interface {
	Autocomplete(ctx context.Context, input string) ([]maps.Suggestion, error)
	Details(ctx context.Context, placeID string) (*maps.Place, error)
	Geocode(ctx context.Context, address string) (*maps.Place, error)
}

type PlacesHandler struct {
	places PlacesAPI
}

// NewPlacesHandler accepts nil; every endpoint then answers 503.
func NewPlacesHandler(places PlacesAPI) *PlacesHandler {
	return &PlacesHandler{places: places}
}

// Autocomplete handles GET /api/places/autocomplete?q=.
func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	if h.places == nil {
		writeServiceError(c, ErrPlacesUnavailable)
		return
	}
	out, err := h.places.Autocomplete(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if out == nil {
		out = []maps.Suggestion{}
	}
	writeJSON(c, http.StatusOK, gin.H{"suggestions": out})
}

// Details handles GET /api/places/:id.
func (h *PlacesHandler) Details(c *gin.Context) {
	if h.places == nil {
		writeServiceError(c, ErrPlacesUnavailable)
		return
	}
	place, err := h.places.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, place)
}

// Geocode handles GET /api/geocode?address=.
func (h *PlacesHandler) Geocode(c *gin.Context) {
	if h.places == nil {
		writeServiceError(c, ErrPlacesUnavailable)
		return
	}
	address := strings.TrimSpace(c.Query("address"))
	if address == "" {
		writeError(c, http.StatusBadRequest, "missing address")
		return
	}
	place, err := h.places.Geocode(c.Request.Context(), address)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, place)
}
