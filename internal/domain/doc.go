// Package domain models disaster reports and the advisory artifacts derived
// from them.
//
// # Disaster Types
//
// Reports are classified into a fixed set: earthquake, flood, fire, hurricane,
// tornado, tsunami. Anything else is "unknown", which is a valid
// classification rather than an error. Every advisory role has a default
// branch for it.
//
// # Coordinates
//
// DisasterEvent.Coordinates is a pointer so an event is either located (both
// latitude and longitude present) or not located at all. Extraction never sets
// it; the resolver fills it in, falling back to a configured default pair.
//
// # Severity
//
// Severity is a small string map. The keyword extractor produces at most one
// key, chosen by the first matching pattern in this order:
//
//	magnitude  "magnitude 6.2"  → {"magnitude": "6.2"}
//	category   "category 4"     → {"category": "4"}
//	level      "level 3"        → {"level": "3"}
//
// Model-assisted extraction may produce other keys. Follow-up questions check
// for the presence of a key, never its value.
//
// # Critical Locations
//
// Points of interest are classified into hospital, police, fire_station,
// shelter and open_space. Display colors are derived from the category:
//
//	hospital     red
//	police       blue
//	fire_station orange
//	open_space   green
//	anything else gray
//
// # Routes
//
// Routes are two-point advisory vectors between the disaster coordinate and a
// facility. Evacuation routes (green) start at the disaster; response routes
// (red) end at it. There are never intermediate waypoints.
package domain
