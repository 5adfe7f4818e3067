package domain

// RouteColor tags a route for rendering.
type RouteColor string

const (
	RouteEvacuation RouteColor = "green"
	RouteResponse   RouteColor = "red"
)

// Route is an advisory two-point vector, not a navigable path.
type Route struct {
	Label     string     `json:"label"`
	Waypoints [2]Geo     `json:"waypoints"`
	Color     RouteColor `json:"color"`
}

// Origin is the first waypoint.
func (r Route) Origin() Geo { return r.Waypoints[0] }

// Destination is the last waypoint.
func (r Route) Destination() Geo { return r.Waypoints[1] }

// AgentResponse is the output of a single advisory role.
type AgentResponse struct {
	Text   string  `json:"text"`
	Routes []Route `json:"routes"`
}

// CoordinatedResponse merges all advisory roles into the terminal artifact.
type CoordinatedResponse struct {
	Text              string   `json:"text"`
	FollowUpQuestions []string `json:"follow_up_questions"`
	Routes            []Route  `json:"routes"`
}
