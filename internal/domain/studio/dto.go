package studio

import "github.com/mwork/studiofinder/internal/pkg/geo"

// SearchRequest carries free-text search input.
type SearchRequest struct {
	Term string `json:"term" validate:"max=200"`
}

// SelectSuggestionRequest picks one of the offered suggestions.
type SelectSuggestionRequest struct {
	Value string `json:"value" validate:"required,max=200"`
}

// RadiusRequest selects the radius used by radius search.
type RadiusRequest struct {
	RadiusKm int `json:"radius_km" validate:"required,radius"`
}

// RadiusSearchRequest relays the outcome of the client's geolocation
// request. Exactly one of a position, an error code or Unsupported is
// expected; RadiusKm optionally changes the radius first.
type RadiusSearchRequest struct {
	RadiusKm    *int     `json:"radius_km,omitempty" validate:"omitempty,radius"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	ErrorCode   string   `json:"error_code,omitempty" validate:"omitempty,oneof=permission_denied position_unavailable timeout unknown 1 2 3"`
	Unsupported bool     `json:"unsupported,omitempty"`
}

// Locator turns the request into the single-shot locator used by
// Directory.SearchByRadius. ok is false when the request carries nothing
// usable.
func (r RadiusSearchRequest) Locator() (locator geo.Locator, ok bool) {
	switch {
	case r.Unsupported:
		return nil, true
	case r.ErrorCode != "":
		return geo.Failing(geo.ParseErrorCode(r.ErrorCode)), true
	case r.Latitude != nil && r.Longitude != nil:
		return geo.Static(geo.Position{Latitude: *r.Latitude, Longitude: *r.Longitude}), true
	default:
		return nil, false
	}
}
