// Package extract turns a free-text disaster report into a DisasterEvent.
//
// Keyword is the deterministic strategy and never fails. Model asks a text
// generator for the same facts as JSON. WithFallback composes the two so that
// any model failure degrades to the keyword result.
package extract

import (
	"regexp"
	"strings"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

// typeKeywords is evaluated in order; the first type with a matching keyword wins.
var typeKeywords = []struct {
	disaster domain.DisasterType
	keywords []string
}{
	{domain.DisasterEarthquake, []string{"earthquake", "quake", "tremor", "seismic"}},
	{domain.DisasterFlood, []string{"flood", "flooding", "water level", "dam break"}},
	{domain.DisasterFire, []string{"fire", "wildfire", "burning", "flames"}},
	{domain.DisasterHurricane, []string{"hurricane", "cyclone", "typhoon", "storm"}},
	{domain.DisasterTornado, []string{"tornado", "twister", "funnel cloud"}},
	{domain.DisasterTsunami, []string{"tsunami", "tidal wave"}},
}

var severityPatterns = []struct {
	key     string
	pattern *regexp.Regexp
}{
	{domain.SeverityMagnitude, regexp.MustCompile(`magnitude (\d+\.?\d*)`)},
	{domain.SeverityCategory, regexp.MustCompile(`category (\d+)`)},
	{domain.SeverityLevel, regexp.MustCompile(`level (\d+)`)},
}

// locationPattern captures the word sequence after the first in/at/near.
// The capture stops at sentence punctuation and digits.
var locationPattern = regexp.MustCompile(`(?i)\b(?:in|at|near)\s+([A-Za-z][A-Za-z\s,'-]*)`)

const locationCutset = " \t\r\n,'-"

// Keyword is the deterministic extraction strategy.
type Keyword struct{}

// Parse extracts type, location and severity using fixed keyword and pattern
// tables. Coordinates are left nil for the resolver.
func (Keyword) Parse(report string) domain.DisasterEvent {
	return domain.DisasterEvent{
		Type:         classify(report),
		LocationName: locate(report),
		Severity:     severity(report),
	}
}

func classify(report string) domain.DisasterType {
	text := strings.ToLower(report)
	for _, entry := range typeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.disaster
			}
		}
	}
	return domain.DisasterUnknown
}

func locate(report string) string {
	m := locationPattern.FindStringSubmatch(report)
	if m == nil {
		return domain.UnknownLocation
	}
	name := strings.Join(strings.Fields(strings.Trim(m[1], locationCutset)), " ")
	if name == "" {
		return domain.UnknownLocation
	}
	return name
}

func severity(report string) map[string]string {
	text := strings.ToLower(report)
	for _, p := range severityPatterns {
		if m := p.pattern.FindStringSubmatch(text); m != nil {
			return map[string]string{p.key: m[1]}
		}
	}
	return map[string]string{}
}
