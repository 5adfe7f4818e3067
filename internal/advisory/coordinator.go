package advisory

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

const disclaimer = "IMPORTANT: This is an automated initial response based on limited information."

// Coordinate runs the roles in fixed order (life preservation, rescue,
// infrastructure, communication) and merges their output. Routes are the
// life-preservation routes followed by the rescue routes.
func Coordinate(event domain.DisasterEvent, locations []domain.CriticalLocation) domain.CoordinatedResponse {
	life := LifePreservation(event, locations)
	rescue := RescueOperations(event, locations)
	infra := Infrastructure(event, locations)
	comms := Communication(event, locations)

	location := strings.TrimSpace(event.LocationName)
	if location == "" {
		location = domain.UnknownLocation
	}
	header := fmt.Sprintf("DISASTER RESPONSE PLAN: %s in %s", strings.ToUpper(string(event.Type)), location)

	sections := []string{header, life.Text, rescue.Text, infra.Text, comms.Text, disclaimer}

	routes := make([]domain.Route, 0, len(life.Routes)+len(rescue.Routes))
	routes = append(routes, life.Routes...)
	routes = append(routes, rescue.Routes...)

	return domain.CoordinatedResponse{
		Text:              strings.Join(sections, "\n\n"),
		FollowUpQuestions: FollowUpQuestions(event),
		Routes:            routes,
	}
}
