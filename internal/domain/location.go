package domain

import "strings"

// Category classifies a point of interest by its relevance to disaster response.
type Category string

const (
	CategoryHospital    Category = "hospital"
	CategoryPolice      Category = "police"
	CategoryFireStation Category = "fire_station"
	CategoryShelter     Category = "shelter"
	CategoryOpenSpace   Category = "open_space"
	CategoryUnknown     Category = "unknown"
)

// DefaultCategories is the search set used when a caller names none.
var DefaultCategories = []Category{
	CategoryHospital,
	CategoryPolice,
	CategoryFireStation,
	CategoryShelter,
	CategoryOpenSpace,
}

// EmergencyServices are the staffed facilities rescue guidance points at.
var EmergencyServices = []Category{
	CategoryHospital,
	CategoryPolice,
	CategoryFireStation,
}

// categoryTags maps provider tag values (OSM amenity/leisure, facility table
// categories, category names themselves) onto categories.
var categoryTags = map[string]Category{
	"hospital":       CategoryHospital,
	"clinic":         CategoryHospital,
	"police":         CategoryPolice,
	"police station": CategoryPolice,
	"police_station": CategoryPolice,
	"fire_station":   CategoryFireStation,
	"fire station":   CategoryFireStation,
	"shelter":        CategoryShelter,
	"open_space":     CategoryOpenSpace,
	"open space":     CategoryOpenSpace,
	"park":           CategoryOpenSpace,
	"garden":         CategoryOpenSpace,
	"common":         CategoryOpenSpace,
}

// ParseCategory maps a provider tag onto a Category, or CategoryUnknown.
func ParseCategory(tag string) Category {
	if c, ok := categoryTags[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return c
	}
	return CategoryUnknown
}

// Label is the human-readable category name used when a place is unnamed.
func (c Category) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// Color is the display color for map markers.
func (c Category) Color() string {
	switch c {
	case CategoryHospital:
		return "red"
	case CategoryPolice:
		return "blue"
	case CategoryFireStation:
		return "orange"
	case CategoryOpenSpace:
		return "green"
	default:
		return "gray"
	}
}

// Icon is the marker icon hint for the presentation layer.
func (c Category) Icon() string {
	switch c {
	case CategoryHospital:
		return "plus"
	case CategoryPolice:
		return "flag"
	case CategoryFireStation:
		return "fire-extinguisher"
	case CategoryOpenSpace:
		return "tree"
	case CategoryShelter:
		return "home"
	default:
		return "info-sign"
	}
}

// In reports whether c is one of the given categories.
func (c Category) In(set []Category) bool {
	for _, s := range set {
		if c == s {
			return true
		}
	}
	return false
}

// CriticalLocation is a classified nearby facility. Values are built by
// NewCriticalLocation and treated as immutable afterwards.
type CriticalLocation struct {
	Category     Category `json:"category"`
	Name         string   `json:"name"`
	Coordinates  Geo      `json:"coordinates"`
	DisplayColor string   `json:"display_color"`
	Icon         string   `json:"icon"`
}

// NewCriticalLocation derives the display fields from the category and falls
// back to the category label when name is empty.
func NewCriticalLocation(category Category, name string, at Geo) CriticalLocation {
	name = strings.TrimSpace(name)
	if name == "" {
		name = category.Label()
	}
	return CriticalLocation{
		Category:     category,
		Name:         name,
		Coordinates:  at,
		DisplayColor: category.Color(),
		Icon:         category.Icon(),
	}
}
