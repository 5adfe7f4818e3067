// Package overpass implements domain.PlaceFinder against the OpenStreetMap
// Overpass API.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

// selectors maps each category to the OSM tag filters that identify it.
var selectors = map[domain.Category][]string{
	domain.CategoryHospital:    {`["amenity"="hospital"]`},
	domain.CategoryPolice:      {`["amenity"="police"]`},
	domain.CategoryFireStation: {`["amenity"="fire_station"]`},
	domain.CategoryShelter:     {`["amenity"="shelter"]`, `["emergency"="assembly_point"]`},
	domain.CategoryOpenSpace:   {`["leisure"="park"]`, `["leisure"="common"]`},
}

// Client implements domain.PlaceFinder using Overpass QL.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an Overpass client for the given interpreter endpoint.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FindPlaces returns OSM nodes, ways and relations of one category within
// radiusMeters of center. Ways and relations are positioned at their center;
// those Overpass returns without one have a nil Position.
func (c *Client) FindPlaces(ctx context.Context, center domain.Geo, radiusMeters int, category domain.Category) ([]domain.Place, error) {
	filters, ok := selectors[category]
	if !ok {
		return nil, fmt.Errorf("overpass: unsupported category %q", category)
	}

	form := url.Values{"data": {buildQuery(center, radiusMeters, filters)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("overpass API error: status %d: %s", resp.StatusCode, body)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	places := make([]domain.Place, 0, len(result.Elements))
	for _, el := range result.Elements {
		if len(el.Tags) == 0 {
			continue
		}
		places = append(places, el.toPlace())
	}
	c.logger.Debug("overpass lookup complete",
		"category", category,
		"elements", len(result.Elements),
		"places", len(places),
	)
	return places, nil
}

func buildQuery(center domain.Geo, radiusMeters int, filters []string) string {
	around := fmt.Sprintf("(around:%d,%.6f,%.6f)", radiusMeters, center.Lat, center.Lon)

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, f := range filters {
		for _, kind := range []string{"node", "way", "relation"} {
			fmt.Fprintf(&b, "  %s%s%s;\n", kind, f, around)
		}
	}
	b.WriteString(");\nout center;")
	return b.String()
}

// Overpass API response types.

type response struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *point            `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (e element) toPlace() domain.Place {
	tag := e.Tags["amenity"]
	if tag == "" {
		tag = e.Tags["leisure"]
	}
	if tag == "" {
		tag = e.Tags["emergency"]
	}

	p := domain.Place{Name: e.Tags["name"], Tag: tag}
	switch {
	case e.Type == "node" && e.Lat != nil && e.Lon != nil:
		p.Position = &domain.Geo{Lat: *e.Lat, Lon: *e.Lon}
	case e.Center != nil:
		p.Position = &domain.Geo{Lat: e.Center.Lat, Lon: e.Center.Lon}
	}
	return p
}
