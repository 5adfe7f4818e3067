package advisory

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
	"github.com/couchcryptid/disaster-response-advisor/internal/extract"
)

var (
	brooklyn     = domain.Geo{Lat: 40.6782, Lon: -73.9442}
	kingsCounty  = domain.NewCriticalLocation(domain.CategoryHospital, "Kings County Hospital", domain.Geo{Lat: 40.6556, Lon: -73.9446})
	prospectPark = domain.NewCriticalLocation(domain.CategoryOpenSpace, "Prospect Park", domain.Geo{Lat: 40.6602, Lon: -73.9690})
)

type role struct {
	name string
	fn   func(domain.DisasterEvent, []domain.CriticalLocation) domain.AgentResponse
}

var roles = []role{
	{"life preservation", LifePreservation},
	{"rescue operations", RescueOperations},
	{"infrastructure", Infrastructure},
	{"communication", Communication},
}

func allTypes() []domain.DisasterType {
	return append(append([]domain.DisasterType{}, domain.KnownDisasterTypes...), domain.DisasterUnknown)
}

func eventAt(t domain.DisasterType, at *domain.Geo) domain.DisasterEvent {
	return domain.DisasterEvent{Type: t, LocationName: "Testville", Coordinates: at, Severity: map[string]string{}}
}

func TestScenario_BrooklynEarthquake(t *testing.T) {
	event := extract.Keyword{}.Parse("An earthquake has been reported in Brooklyn, New York")
	event.Coordinates = &brooklyn
	locations := []domain.CriticalLocation{kingsCounty, prospectPark}

	resp := Coordinate(event, locations)

	assert.Equal(t, domain.DisasterEarthquake, event.Type)
	assert.True(t, strings.HasPrefix(resp.Text, "DISASTER RESPONSE PLAN: EARTHQUAKE in Brooklyn, New York"))
	assert.Contains(t, resp.Text, "Drop, Cover, and Hold On")
	assert.True(t, strings.HasSuffix(resp.Text, disclaimer))

	require.Len(t, resp.Routes, 2)
	assert.Equal(t, domain.RouteEvacuation, resp.Routes[0].Color)
	assert.Equal(t, "Evacuation to Prospect Park", resp.Routes[0].Label)
	assert.Equal(t, prospectPark.Coordinates, resp.Routes[0].Destination())
	assert.Equal(t, domain.RouteResponse, resp.Routes[1].Color)
	assert.Equal(t, "Response route from Kings County Hospital", resp.Routes[1].Label)
	assert.Equal(t, kingsCounty.Coordinates, resp.Routes[1].Origin())

	require.Len(t, resp.FollowUpQuestions, 3)
	assert.Equal(t, "What was the magnitude of the earthquake?", resp.FollowUpQuestions[2])
}

func TestScenario_UnknownInput(t *testing.T) {
	event := extract.Keyword{}.Parse("hello there")
	require.Equal(t, domain.DisasterUnknown, event.Type)

	for _, r := range roles {
		t.Run(r.name, func(t *testing.T) {
			got := r.fn(event, nil)
			assert.NotEmpty(t, got.Text)
			assert.Empty(t, got.Routes)
		})
	}

	resp := Coordinate(event, nil)
	assert.Contains(t, resp.Text, "DISASTER RESPONSE PLAN: UNKNOWN in unknown location")
	assert.Contains(t, resp.Text, "No nearby emergency services identified in the system.")
	assert.NotContains(t, resp.Text, "NEARBY EVACUATION POINTS")
	assert.Empty(t, resp.Routes)
	assert.NotNil(t, resp.Routes)
}

func TestRoles_NonEmptyGuidanceForEveryType(t *testing.T) {
	for _, dt := range allTypes() {
		for _, r := range roles {
			t.Run(string(dt)+"/"+r.name, func(t *testing.T) {
				got := r.fn(eventAt(dt, &brooklyn), nil)
				lines := strings.Split(got.Text, "\n")
				assert.GreaterOrEqual(t, len(lines), 2, "header plus at least one guidance line")
			})
		}
	}
}

func TestLifePreservation_EvacuationPolicy(t *testing.T) {
	police := domain.NewCriticalLocation(domain.CategoryPolice, "84th Precinct", domain.Geo{Lat: 40.69, Lon: -73.99})
	shelter := domain.NewCriticalLocation(domain.CategoryShelter, "Armory", domain.Geo{Lat: 40.68, Lon: -73.95})
	locations := []domain.CriticalLocation{kingsCounty, prospectPark, police, shelter}

	tests := []struct {
		disaster domain.DisasterType
		want     []string
	}{
		{domain.DisasterEarthquake, []string{"Prospect Park"}},
		{domain.DisasterFire, []string{"Prospect Park"}},
		{domain.DisasterFlood, []string{"Kings County Hospital", "84th Precinct"}},
		{domain.DisasterUnknown, []string{"Kings County Hospital", "84th Precinct"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.disaster), func(t *testing.T) {
			got := LifePreservation(eventAt(tt.disaster, &brooklyn), locations)

			var destinations []string
			for _, r := range got.Routes {
				destinations = append(destinations, strings.TrimPrefix(r.Label, "Evacuation to "))
			}
			assert.Equal(t, tt.want, destinations)
			assert.NotContains(t, got.Text, "Armory")
		})
	}
}

func TestLifePreservation_ListsAtMostThreeAndRoutesAtMostTwo(t *testing.T) {
	var parks []domain.CriticalLocation
	for _, name := range []string{"A", "B", "C", "D"} {
		parks = append(parks, domain.NewCriticalLocation(domain.CategoryOpenSpace, "Park "+name, domain.Geo{Lat: 40.7, Lon: -73.9}))
	}

	got := LifePreservation(eventAt(domain.DisasterEarthquake, &brooklyn), parks)

	assert.Contains(t, got.Text, "- Park C")
	assert.NotContains(t, got.Text, "- Park D")
	assert.Len(t, got.Routes, 2)
}

func TestRescueOperations_NearestFirst(t *testing.T) {
	far := domain.NewCriticalLocation(domain.CategoryFireStation, "Far Engine", domain.Geo{Lat: 41.0, Lon: -74.5})
	near := domain.NewCriticalLocation(domain.CategoryPolice, "Near Precinct", domain.Geo{Lat: 40.679, Lon: -73.945})

	got := RescueOperations(eventAt(domain.DisasterFlood, &brooklyn), []domain.CriticalLocation{far, prospectPark, kingsCounty, near})

	require.Len(t, got.Routes, 2)
	assert.Equal(t, "Response route from Near Precinct", got.Routes[0].Label)
	assert.Equal(t, "Response route from Kings County Hospital", got.Routes[1].Label)
	assert.Contains(t, got.Text, "- Near Precinct (police)")
	assert.Contains(t, got.Text, "- Far Engine (fire station)")
	assert.NotContains(t, got.Text, "Prospect Park")
	assert.Contains(t, got.Text, "Call emergency services (911 in the US)")
}

func TestRouteDirection(t *testing.T) {
	police := domain.NewCriticalLocation(domain.CategoryPolice, "84th Precinct", domain.Geo{Lat: 40.69, Lon: -73.99})
	locations := []domain.CriticalLocation{kingsCounty, prospectPark, police}

	for _, dt := range allTypes() {
		t.Run(string(dt), func(t *testing.T) {
			event := eventAt(dt, &brooklyn)

			for _, r := range LifePreservation(event, locations).Routes {
				assert.Equal(t, brooklyn, r.Origin())
				assert.Equal(t, domain.RouteEvacuation, r.Color)
			}
			for _, r := range RescueOperations(event, locations).Routes {
				assert.Equal(t, brooklyn, r.Destination())
				assert.Equal(t, domain.RouteResponse, r.Color)
			}
		})
	}
}

func TestRoutes_RequireCoordinates(t *testing.T) {
	event := eventAt(domain.DisasterFlood, nil)
	locations := []domain.CriticalLocation{kingsCounty, prospectPark}

	assert.Empty(t, LifePreservation(event, locations).Routes)
	assert.Empty(t, RescueOperations(event, locations).Routes)
	assert.Contains(t, RescueOperations(event, locations).Text, "Kings County Hospital")
}

func TestInfrastructureAndCommunication_NeverRoute(t *testing.T) {
	locations := []domain.CriticalLocation{kingsCounty, prospectPark}
	for _, dt := range allTypes() {
		event := eventAt(dt, &brooklyn)
		assert.Empty(t, Infrastructure(event, locations).Routes)
		assert.Empty(t, Communication(event, locations).Routes)
	}
	assert.Contains(t, Infrastructure(eventAt(domain.DisasterEarthquake, nil), nil).Text, "Gas leaks")
	assert.Contains(t, Infrastructure(eventAt(domain.DisasterFlood, nil), nil).Text, "contaminated")
}

func TestCoordinate_SectionOrderAndRouteAggregation(t *testing.T) {
	event := eventAt(domain.DisasterEarthquake, &brooklyn)
	resp := Coordinate(event, []domain.CriticalLocation{kingsCounty, prospectPark})

	order := []string{
		"DISASTER RESPONSE PLAN:",
		"LIFE SAFETY PRIORITY:",
		"EMERGENCY SERVICES RESPONSE:",
		"INFRASTRUCTURE CONCERNS:",
		"COMMUNICATION GUIDANCE:",
		disclaimer,
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(resp.Text, marker)
		require.Greater(t, idx, last, marker)
		last = idx
	}

	locations := []domain.CriticalLocation{kingsCounty, prospectPark}
	want := append(LifePreservation(event, locations).Routes, RescueOperations(event, locations).Routes...)
	assert.Equal(t, want, resp.Routes)
}

func TestCoordinate_Idempotent(t *testing.T) {
	event := domain.DisasterEvent{
		Type:         domain.DisasterHurricane,
		LocationName: "Miami",
		Coordinates:  &domain.Geo{Lat: 25.76, Lon: -80.19},
		Severity:     map[string]string{domain.SeverityCategory: "4"},
	}
	locations := []domain.CriticalLocation{kingsCounty, prospectPark}

	first := Coordinate(event, locations)
	second := Coordinate(event, locations)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Coordinate not idempotent (-first +second):\n%s", diff)
	}
}

func TestFollowUpQuestions(t *testing.T) {
	tests := []struct {
		name     string
		disaster domain.DisasterType
		severity map[string]string
		want     string
	}{
		{"earthquake without magnitude", domain.DisasterEarthquake, nil, "What was the magnitude of the earthquake?"},
		{"earthquake with magnitude", domain.DisasterEarthquake, map[string]string{"magnitude": "6.2"}, "Have there been any aftershocks?"},
		{"flood without level", domain.DisasterFlood, nil, "What is the current water level?"},
		{"flood with level", domain.DisasterFlood, map[string]string{"level": "3"}, "Is the water level rising or receding?"},
		{"fire", domain.DisasterFire, nil, "What is the approximate size of the affected area?"},
		{"hurricane without category", domain.DisasterHurricane, nil, "What is the current wind speed?"},
		{"tornado with category", domain.DisasterTornado, map[string]string{"category": "3"}, "What is the projected path?"},
		{"tsunami", domain.DisasterTsunami, nil, "Have official tsunami warnings been issued for the coast?"},
		{"unknown", domain.DisasterUnknown, nil, "What type of emergency are you experiencing?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FollowUpQuestions(domain.DisasterEvent{Type: tt.disaster, Severity: tt.severity})

			require.Len(t, got, 3)
			assert.Equal(t, baselineQuestions, got[:2])
			assert.Equal(t, tt.want, got[2])
		})
	}
}

func TestFollowUpQuestions_NeverMoreThanThree(t *testing.T) {
	for _, dt := range append(allTypes(), "volcano") {
		got := FollowUpQuestions(domain.DisasterEvent{Type: dt})
		assert.LessOrEqual(t, len(got), maxQuestions)
		assert.Equal(t, baselineQuestions, got[:2])
	}
}
