package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/disaster-response-advisor/internal/advisory"
	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
	"github.com/couchcryptid/disaster-response-advisor/internal/observability"
)

// FactExtractor turns a report into a DisasterEvent without failing.
type FactExtractor interface {
	Extract(ctx context.Context, report string) domain.DisasterEvent
}

// LocationResolver fills in an event's coordinates without failing.
type LocationResolver interface {
	ResolveEvent(ctx context.Context, event domain.DisasterEvent) domain.DisasterEvent
}

// InfrastructureIndex finds critical locations around a position without failing.
type InfrastructureIndex interface {
	Nearby(ctx context.Context, center domain.Geo, radiusMeters int, categories ...domain.Category) []domain.CriticalLocation
}

// Advisor runs a single report through extraction, location resolution,
// infrastructure lookup and coordination.
type Advisor struct {
	extractor FactExtractor
	resolver  LocationResolver
	index     InfrastructureIndex
	radius    int
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewAdvisor wires the advisory stages together.
func NewAdvisor(e FactExtractor, r LocationResolver, ix InfrastructureIndex, radiusMeters int, logger *slog.Logger, metrics *observability.Metrics) *Advisor {
	return &Advisor{
		extractor: e,
		resolver:  r,
		index:     ix,
		radius:    radiusMeters,
		logger:    logger,
		metrics:   metrics,
	}
}

// Advise produces an advisory for report. Collaborator failures degrade to
// defaults, so every report yields a well-formed advisory.
func (a *Advisor) Advise(ctx context.Context, report string) domain.Advisory {
	start := domain.Clock().Now()

	event := a.extractor.Extract(ctx, report)
	event = a.resolver.ResolveEvent(ctx, event)

	locations := []domain.CriticalLocation{}
	if event.Coordinates != nil {
		locations = a.index.Nearby(ctx, *event.Coordinates, a.radius)
	}

	response := advisory.Coordinate(event, locations)

	a.metrics.Advisories.WithLabelValues(string(event.Type)).Inc()
	a.metrics.AdviseDuration.Observe(domain.Clock().Since(start).Seconds())
	a.logger.Debug("advisory produced",
		"disaster_type", event.Type,
		"location", event.LocationName,
		"critical_locations", len(locations),
		"routes", len(response.Routes),
	)

	return domain.Advisory{
		Event:       event,
		Locations:   locations,
		Response:    response,
		GeneratedAt: domain.Now(),
	}
}
