package advisory

import "github.com/couchcryptid/disaster-response-advisor/internal/domain"

const maxQuestions = 3

var baselineQuestions = []string{
	"Are there any reported casualties or injuries?",
	"Are there damaged buildings or infrastructure?",
}

// question is a type-specific follow-up. When skipIfKnown names a severity
// key already present on the event, the question is not asked.
type question struct {
	text        string
	skipIfKnown string
}

var windstormQuestions = []question{
	{"What is the current wind speed?", domain.SeverityCategory},
	{"What is the projected path?", ""},
}

// typeQuestions lists candidates in priority order; the first one still
// eligible is asked.
var typeQuestions = map[domain.DisasterType][]question{
	domain.DisasterEarthquake: {
		{"What was the magnitude of the earthquake?", domain.SeverityMagnitude},
		{"Have there been any aftershocks?", ""},
	},
	domain.DisasterFlood: {
		{"What is the current water level?", domain.SeverityLevel},
		{"Is the water level rising or receding?", ""},
	},
	domain.DisasterFire: {
		{"What is the approximate size of the affected area?", ""},
		{"What direction is the fire moving?", ""},
	},
	domain.DisasterHurricane: windstormQuestions,
	domain.DisasterTornado:   windstormQuestions,
	domain.DisasterTsunami: {
		{"Have official tsunami warnings been issued for the coast?", ""},
	},
	domain.DisasterUnknown: {
		{"What type of emergency are you experiencing?", ""},
	},
}

// FollowUpQuestions returns the baseline questions followed by at most one
// type-specific question, capped at three.
func FollowUpQuestions(event domain.DisasterEvent) []string {
	questions := make([]string, 0, maxQuestions)
	questions = append(questions, baselineQuestions...)

	for _, q := range typeQuestions[event.Type] {
		if q.skipIfKnown != "" && event.HasSeverity(q.skipIfKnown) {
			continue
		}
		questions = append(questions, q.text)
		break
	}

	return head(questions, maxQuestions)
}
