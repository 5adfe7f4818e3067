// Package resolver turns a location name into coordinates. It never fails:
// coordinate literals are parsed locally and every lookup problem yields the
// configured default position.
package resolver

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

// coordinatePattern matches "lat, lon" with optional signs and decimals.
var coordinatePattern = regexp.MustCompile(`^\s*([-+]?\d+(?:\.\d+)?)\s*,\s*([-+]?\d+(?:\.\d+)?)\s*$`)

// Resolver wraps a Geocoder with a timeout and a default position.
type Resolver struct {
	geocoder domain.Geocoder
	fallback domain.Geo
	timeout  time.Duration
	logger   *slog.Logger
}

// New creates a resolver. A nil geocoder resolves every name to fallback.
func New(geocoder domain.Geocoder, fallback domain.Geo, timeout time.Duration, logger *slog.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
	}
}

// Default is the position returned when resolution fails.
func (r *Resolver) Default() domain.Geo {
	return r.fallback
}

// Resolve returns coordinates for location.
func (r *Resolver) Resolve(ctx context.Context, location string) domain.Geo {
	if geo, ok := ParseCoordinates(location); ok {
		return geo
	}

	name := strings.TrimSpace(location)
	if name == "" || strings.EqualFold(name, domain.UnknownLocation) || r.geocoder == nil {
		return r.fallback
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.geocoder.ForwardGeocode(ctx, name)
	if err != nil {
		r.logger.Warn("forward geocoding failed, using default coordinates",
			"location", name,
			"error", err,
		)
		return r.fallback
	}
	if !result.Found() {
		r.logger.Warn("location not found, using default coordinates", "location", name)
		return r.fallback
	}
	return domain.Geo{Lat: result.Lat, Lon: result.Lon}
}

// ResolveEvent fills in missing coordinates. Events that already carry
// coordinates are returned unchanged.
func (r *Resolver) ResolveEvent(ctx context.Context, event domain.DisasterEvent) domain.DisasterEvent {
	if event.Coordinates != nil {
		return event
	}
	geo := r.Resolve(ctx, event.LocationName)
	event.Coordinates = &geo
	return event
}

// ParseCoordinates parses a "lat, lon" literal within WGS-84 bounds.
func ParseCoordinates(s string) (domain.Geo, bool) {
	m := coordinatePattern.FindStringSubmatch(s)
	if m == nil {
		return domain.Geo{}, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return domain.Geo{}, false
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return domain.Geo{}, false
	}
	geo := domain.Geo{Lat: lat, Lon: lon}
	if !geo.Valid() {
		return domain.Geo{}, false
	}
	return geo, true
}
