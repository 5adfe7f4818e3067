package domain

import (
	"math"
	"strings"
	"time"
)

// DisasterType is the normalized disaster classification extracted from a report.
type DisasterType string

const (
	DisasterEarthquake DisasterType = "earthquake"
	DisasterFlood      DisasterType = "flood"
	DisasterFire       DisasterType = "fire"
	DisasterHurricane  DisasterType = "hurricane"
	DisasterTornado    DisasterType = "tornado"
	DisasterTsunami    DisasterType = "tsunami"
	DisasterUnknown    DisasterType = "unknown"
)

// KnownDisasterTypes lists every classifiable type in declaration order.
var KnownDisasterTypes = []DisasterType{
	DisasterEarthquake,
	DisasterFlood,
	DisasterFire,
	DisasterHurricane,
	DisasterTornado,
	DisasterTsunami,
}

// ParseDisasterType normalizes a free-form type name. Anything outside the
// enumerated set maps to DisasterUnknown.
func ParseDisasterType(s string) DisasterType {
	t := DisasterType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range KnownDisasterTypes {
		if t == known {
			return t
		}
	}
	return DisasterUnknown
}

// UnknownLocation is the sentinel location name used when no place could be
// extracted. The resolver never geocodes it.
const UnknownLocation = "unknown location"

// Severity keys produced by the keyword extractor.
const (
	SeverityMagnitude = "magnitude"
	SeverityCategory  = "category"
	SeverityLevel     = "level"
)

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the pair lies inside WGS-84 bounds.
func (g Geo) Valid() bool {
	return g.Lat >= -90 && g.Lat <= 90 && g.Lon >= -180 && g.Lon <= 180
}

const earthRadiusMeters = 6371000

// DistanceMeters is the great-circle distance to o.
func (g Geo) DistanceMeters(o Geo) float64 {
	lat1 := g.Lat * math.Pi / 180
	lat2 := o.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (o.Lon - g.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// DisasterEvent is the structured fact set extracted from a free-text report.
// Coordinates is nil until resolved, so a partial pair cannot be represented.
type DisasterEvent struct {
	Type         DisasterType      `json:"disaster_type"`
	LocationName string            `json:"location"`
	Coordinates  *Geo              `json:"coordinates,omitempty"`
	Severity     map[string]string `json:"severity"`
	Details      string            `json:"details"`
}

// HasSeverity reports whether the named severity fact was extracted.
func (e DisasterEvent) HasSeverity(key string) bool {
	_, ok := e.Severity[key]
	return ok
}

// Advisory is the envelope handed to the presentation layer: the extracted
// event, the critical locations considered, and the coordinated response.
type Advisory struct {
	ReportID    string              `json:"report_id,omitempty"`
	Event       DisasterEvent       `json:"event"`
	Locations   []CriticalLocation  `json:"critical_locations"`
	Response    CoordinatedResponse `json:"response"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now().UTC()
}
