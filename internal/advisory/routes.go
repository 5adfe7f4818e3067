package advisory

import (
	"fmt"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

// evacuationRoutes runs from the disaster to each of the first points.
func evacuationRoutes(disaster *domain.Geo, points []domain.CriticalLocation) []domain.Route {
	routes := []domain.Route{}
	if disaster == nil {
		return routes
	}
	for _, p := range head(points, maxRoutes) {
		routes = append(routes, domain.Route{
			Label:     fmt.Sprintf("Evacuation to %s", p.Name),
			Waypoints: [2]domain.Geo{*disaster, p.Coordinates},
			Color:     domain.RouteEvacuation,
		})
	}
	return routes
}

// responseRoutes runs from each of the first services to the disaster.
func responseRoutes(disaster *domain.Geo, services []domain.CriticalLocation) []domain.Route {
	routes := []domain.Route{}
	if disaster == nil {
		return routes
	}
	for _, s := range head(services, maxRoutes) {
		routes = append(routes, domain.Route{
			Label:     fmt.Sprintf("Response route from %s", s.Name),
			Waypoints: [2]domain.Geo{s.Coordinates, *disaster},
			Color:     domain.RouteResponse,
		})
	}
	return routes
}
