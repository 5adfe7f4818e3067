package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
// A zero result with a nil error means "not found".
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Found reports whether the provider returned a usable position.
func (r GeocodingResult) Found() bool {
	return r.Lat != 0 || r.Lon != 0
}

// Geocoder converts a free-text place name to coordinates.
type Geocoder interface {
	ForwardGeocode(ctx context.Context, query string) (GeocodingResult, error)
}

// Place is a raw point of interest as returned by an infrastructure lookup
// provider. Position is nil for features without a usable center point.
type Place struct {
	Name     string
	Tag      string // provider classification, e.g. OSM amenity or leisure value
	Position *Geo
}

// PlaceFinder looks up points of interest of one category around a center.
type PlaceFinder interface {
	FindPlaces(ctx context.Context, center Geo, radiusMeters int, category Category) ([]Place, error)
}

// TextGenerator produces free text from a system instruction and a user prompt.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
