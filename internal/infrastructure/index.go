// Package infrastructure finds critical facilities around a position.
//
// Index queries a PlaceFinder once per category in parallel, classifies the
// results, drops features without a usable position, and memoizes complete
// result sets in a bounded LRU cache keyed by position, radius and category set.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
	"github.com/couchcryptid/disaster-response-advisor/internal/observability"
)

// Index is the critical-infrastructure lookup. It is safe for concurrent use.
type Index struct {
	finder  domain.PlaceFinder
	cache   *lru.Cache[string, []domain.CriticalLocation]
	timeout time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an index holding at most cacheSize result sets. A nil finder
// yields an index that always returns no locations.
func New(finder domain.PlaceFinder, cacheSize int, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) (*Index, error) {
	cache, err := lru.New[string, []domain.CriticalLocation](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create places cache: %w", err)
	}
	return &Index{
		finder:  finder,
		cache:   cache,
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Nearby returns classified locations within radiusMeters of center, grouped
// in category order. With no categories it searches DefaultCategories. A
// failing category contributes nothing and the rest are still returned.
func (ix *Index) Nearby(ctx context.Context, center domain.Geo, radiusMeters int, categories ...domain.Category) []domain.CriticalLocation {
	if len(categories) == 0 {
		categories = domain.DefaultCategories
	}
	if ix.finder == nil {
		return []domain.CriticalLocation{}
	}

	key := cacheKey(center, radiusMeters, categories)
	if cached, ok := ix.cache.Get(key); ok {
		ix.metrics.PlacesCache.WithLabelValues("hit").Inc()
		return slices.Clone(cached)
	}
	ix.metrics.PlacesCache.WithLabelValues("miss").Inc()

	perCategory := make([][]domain.CriticalLocation, len(categories))
	failed := make([]bool, len(categories))

	var g errgroup.Group
	for i, category := range categories {
		g.Go(func() error {
			locations, err := ix.lookup(ctx, center, radiusMeters, category)
			if err != nil {
				ix.logger.Warn("critical infrastructure lookup failed",
					"category", category,
					"lat", center.Lat,
					"lon", center.Lon,
					"error", err,
				)
				failed[i] = true
				return nil
			}
			perCategory[i] = locations
			return nil
		})
	}
	_ = g.Wait() // lookups never return errors; failures are recorded per category

	merged := []domain.CriticalLocation{}
	for _, locations := range perCategory {
		merged = append(merged, locations...)
	}

	// Partial results are served but never memoized.
	if !slices.Contains(failed, true) {
		ix.cache.Add(key, slices.Clone(merged))
	}
	return merged
}

func (ix *Index) lookup(ctx context.Context, center domain.Geo, radiusMeters int, category domain.Category) ([]domain.CriticalLocation, error) {
	ctx, cancel := context.WithTimeout(ctx, ix.timeout)
	defer cancel()

	places, err := ix.finder.FindPlaces(ctx, center, radiusMeters, category)
	if err != nil {
		ix.metrics.PlacesRequests.WithLabelValues(string(category), "error").Inc()
		return nil, err
	}
	ix.metrics.PlacesRequests.WithLabelValues(string(category), "success").Inc()
	return classify(places, category), nil
}

// classify converts raw places into CriticalLocations. The provider tag wins
// when it names a known category; otherwise the queried category is used.
func classify(places []domain.Place, queried domain.Category) []domain.CriticalLocation {
	out := make([]domain.CriticalLocation, 0, len(places))
	for _, p := range places {
		if p.Position == nil || !p.Position.Valid() {
			continue
		}
		category := domain.ParseCategory(p.Tag)
		if category == domain.CategoryUnknown {
			category = queried
		}
		out = append(out, domain.NewCriticalLocation(category, p.Name, *p.Position))
	}
	return out
}

func cacheKey(center domain.Geo, radiusMeters int, categories []domain.Category) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return fmt.Sprintf("%.6f,%.6f|%d|%s", center.Lat, center.Lon, radiusMeters, strings.Join(names, ","))
}
