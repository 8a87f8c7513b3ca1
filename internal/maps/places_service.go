package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"ridecompare/internal/types"
)

// MinAutocompleteInput is the shortest query sent to Place Autocomplete.
const MinAutocompleteInput = 3

var ErrPlaceNotFound = errors.New("place not found")

// Suggestion is one autocomplete prediction.
type Suggestion struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// Place represents a resolved location.
type Place struct {
	PlaceID  string      `json:"place_id"`
	Name     string      `json:"name"`
	Address  string      `json:"address"`
	Location types.Point `json:"location"`
}

// PlacesService handles interactions with Google Places and Geocoding APIs.
type PlacesService struct {
	client *maps.Client
	opts   Options
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string, opts Options, extra ...maps.ClientOption) (*PlacesService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, opts: opts}, nil
}

// Autocomplete returns predictions for input. Inputs shorter than
// MinAutocompleteInput characters return nothing without calling the API.
func (s *PlacesService) Autocomplete(ctx context.Context, input string) ([]Suggestion, error) {
	input = strings.TrimSpace(input)
	if len([]rune(input)) < MinAutocompleteInput {
		return nil, nil
	}

	r := &maps.PlaceAutocompleteRequest{
		Input:    input,
		Language: s.opts.Language,
	}
	if s.opts.Country != "" {
		r.Components = map[maps.Component][]string{maps.ComponentCountry: {s.opts.Country}}
	}

	resp, err := s.client.PlaceAutocomplete(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	out := make([]Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		sg := Suggestion{PlaceID: p.PlaceID, Description: p.Description}
		if p.StructuredFormatting.MainText != "" {
			sg.MainText = p.StructuredFormatting.MainText
			sg.SecondaryText = p.StructuredFormatting.SecondaryText
		} else {
			sg.MainText = p.Description
		}
		out = append(out, sg)
	}
	return out, nil
}

// Details resolves a place ID to its name, address and coordinates.
func (s *PlacesService) Details(ctx context.Context, placeID string) (*Place, error) {
	if placeID == "" {
		return nil, ErrPlaceNotFound
	}
	res, err := s.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID:  placeID,
		Language: s.opts.Language,
		Region:   s.opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	if res.PlaceID == "" && res.FormattedAddress == "" {
		return nil, ErrPlaceNotFound
	}
	return &Place{
		PlaceID:  placeID,
		Name:     res.Name,
		Address:  res.FormattedAddress,
		Location: types.Point{Lat: res.Geometry.Location.Lat, Lng: res.Geometry.Location.Lng},
	}, nil
}

// Geocode returns the first match for address.
func (s *PlacesService) Geocode(ctx context.Context, address string) (*Place, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrPlaceNotFound
	}
	r := &maps.GeocodingRequest{
		Address:  address,
		Region:   s.opts.Region,
		Language: s.opts.Language,
	}
	if s.opts.Country != "" {
		r.Components = map[maps.Component]string{maps.ComponentCountry: s.opts.Country}
	}

	results, err := s.client.Geocode(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrPlaceNotFound
	}
	first := results[0]
	return &Place{
		PlaceID:  first.PlaceID,
		Name:     address,
		Address:  first.FormattedAddress,
		Location: types.Point{Lat: first.Geometry.Location.Lat, Lng: first.Geometry.Location.Lng},
	}, nil
}
