package advisory

import "github.com/couchcryptid/disaster-response-advisor/internal/domain"

// guidance is a disaster-type keyed table of canned guidance lines. Every
// table carries a DisasterUnknown entry used for any type it does not list.
type guidance map[domain.DisasterType][]string

func (g guidance) lines(t domain.DisasterType) []string {
	if lines, ok := g[t]; ok {
		return lines
	}
	return g[domain.DisasterUnknown]
}

var windstormSafety = []string{
	"Seek shelter in the lowest floor of a sturdy building.",
	"Stay away from windows and exterior walls.",
}

var lifeSafetyGuidance = guidance{
	domain.DisasterEarthquake: {
		"If indoors: Drop, Cover, and Hold On. Take cover under sturdy furniture.",
		"If outdoors: Move to open areas away from buildings, utility wires, and trees.",
	},
	domain.DisasterFlood: {
		"Move to higher ground immediately.",
		"Do not walk or drive through flood waters.",
	},
	domain.DisasterFire: {
		"Evacuate immediately following designated routes.",
		"Cover nose and mouth with wet cloth if smoke is present.",
	},
	domain.DisasterHurricane: windstormSafety,
	domain.DisasterTornado:   windstormSafety,
	domain.DisasterTsunami: {
		"Move inland and to high ground immediately.",
		"Do not return to the coast until officials declare it safe.",
	},
	domain.DisasterUnknown: {
		"Move away from any immediate danger and stay alert.",
		"Follow instructions from local authorities.",
	},
}

var windstormInfrastructure = []string{
	"Secure outdoor objects or bring them indoors.",
	"Power outages are likely; have flashlights and batteries ready.",
	"Water and other utilities may be disrupted.",
}

var infrastructureGuidance = guidance{
	domain.DisasterEarthquake: {
		"Gas leaks are common after earthquakes. If you smell gas, turn off the main valve.",
		"Be cautious of damaged roads, bridges, and buildings.",
		"Power outages may occur; avoid downed power lines.",
	},
	domain.DisasterFlood: {
		"Avoid contact with flood water which may be contaminated.",
		"Do not use electrical appliances that have been wet.",
		"Water supply may be contaminated; use bottled or treated water.",
	},
	domain.DisasterFire: {
		"Turn off utilities at the main valves if instructed.",
		"Clear flammable materials from around your home if time permits.",
	},
	domain.DisasterHurricane: windstormInfrastructure,
	domain.DisasterTornado:   windstormInfrastructure,
	domain.DisasterTsunami: {
		"Coastal roads, bridges, and ports may be flooded or damaged.",
		"Water supply may be contaminated; use bottled or treated water.",
	},
	domain.DisasterUnknown: {
		"Stay clear of damaged structures and downed power lines.",
		"Report utility failures to your local provider.",
	},
}

var selfRescueGuidance = []string{
	"Call emergency services (911 in the US)",
	"If trapped, make noise to alert rescuers",
	"If trained in first aid, assist others until help arrives",
}

var communicationGuidance = []string{
	"Use text messages instead of calls to reduce network congestion",
	"Monitor local radio/TV stations for emergency broadcasts",
	"Report your status to friends/family via social media if possible",
	"Share critical information about the situation with authorities",
}

// evacuationPolicy selects which categories count as evacuation points.
// Open ground suits earthquakes and fires; otherwise sturdy staffed buildings.
var evacuationPolicy = map[domain.DisasterType][]domain.Category{
	domain.DisasterEarthquake: {domain.CategoryOpenSpace},
	domain.DisasterFire:       {domain.CategoryOpenSpace},
}

func evacuationCategories(t domain.DisasterType) []domain.Category {
	if categories, ok := evacuationPolicy[t]; ok {
		return categories
	}
	return domain.EmergencyServices
}
