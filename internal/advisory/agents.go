// Package advisory holds the four fixed advisory roles and the coordinator
// that merges them. Every function here is pure: identical inputs produce
// identical outputs and nothing is retained between calls.
package advisory

import (
	"fmt"
	"slices"
	"strings"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

const (
	// maxListed caps how many named locations a role prints.
	maxListed = 3
	// maxRoutes caps how many routes a role synthesizes.
	maxRoutes = 2
)

// LifePreservation gives immediate-safety guidance and routes from the
// disaster to the first evacuation points.
func LifePreservation(event domain.DisasterEvent, locations []domain.CriticalLocation) domain.AgentResponse {
	points := filter(locations, evacuationCategories(event.Type))

	var b strings.Builder
	b.WriteString("LIFE SAFETY PRIORITY:\n")
	writeBullets(&b, lifeSafetyGuidance.lines(event.Type))

	if len(points) > 0 {
		b.WriteString("\nNEARBY EVACUATION POINTS:\n")
		for _, p := range head(points, maxListed) {
			fmt.Fprintf(&b, "- %s\n", p.Name)
		}
	}

	return domain.AgentResponse{
		Text:   strings.TrimRight(b.String(), "\n"),
		Routes: evacuationRoutes(event.Coordinates, points),
	}
}

// Infrastructure warns about hazards to utilities and structures.
func Infrastructure(event domain.DisasterEvent, _ []domain.CriticalLocation) domain.AgentResponse {
	var b strings.Builder
	b.WriteString("INFRASTRUCTURE CONCERNS:\n")
	writeBullets(&b, infrastructureGuidance.lines(event.Type))

	return domain.AgentResponse{
		Text:   strings.TrimRight(b.String(), "\n"),
		Routes: []domain.Route{},
	}
}

// RescueOperations points at the nearest emergency services and routes them
// toward the disaster.
func RescueOperations(event domain.DisasterEvent, locations []domain.CriticalLocation) domain.AgentResponse {
	services := filter(locations, domain.EmergencyServices)
	if event.Coordinates != nil {
		services = nearestFirst(*event.Coordinates, services)
	}

	var b strings.Builder
	b.WriteString("EMERGENCY SERVICES RESPONSE:\n")
	if len(services) > 0 {
		b.WriteString("Nearest emergency facilities:\n")
		for _, s := range head(services, maxListed) {
			fmt.Fprintf(&b, "- %s (%s)\n", s.Name, s.Category.Label())
		}
	} else {
		b.WriteString("No nearby emergency services identified in the system.\n")
	}

	b.WriteString("\nIf you need immediate assistance:\n")
	writeBullets(&b, selfRescueGuidance)

	return domain.AgentResponse{
		Text:   strings.TrimRight(b.String(), "\n"),
		Routes: responseRoutes(event.Coordinates, services),
	}
}

// Communication gives fixed communication-discipline guidance.
func Communication(_ domain.DisasterEvent, _ []domain.CriticalLocation) domain.AgentResponse {
	var b strings.Builder
	b.WriteString("COMMUNICATION GUIDANCE:\n")
	writeBullets(&b, communicationGuidance)

	return domain.AgentResponse{
		Text:   strings.TrimRight(b.String(), "\n"),
		Routes: []domain.Route{},
	}
}

func writeBullets(b *strings.Builder, lines []string) {
	for _, line := range lines {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func filter(locations []domain.CriticalLocation, categories []domain.Category) []domain.CriticalLocation {
	var out []domain.CriticalLocation
	for _, loc := range locations {
		if loc.Category.In(categories) {
			out = append(out, loc)
		}
	}
	return out
}

// nearestFirst returns a copy of locations ordered by distance from origin.
// Equidistant locations keep their input order.
func nearestFirst(origin domain.Geo, locations []domain.CriticalLocation) []domain.CriticalLocation {
	sorted := slices.Clone(locations)
	slices.SortStableFunc(sorted, func(a, b domain.CriticalLocation) int {
		da, db := origin.DistanceMeters(a.Coordinates), origin.DistanceMeters(b.Coordinates)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
