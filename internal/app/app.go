// Package app assembles the advisory engine from configuration. It chooses
// the geocoding, places and model providers and owns their lifecycles.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couchcryptid/disaster-response-advisor/internal/adapter/geocache"
	"github.com/couchcryptid/disaster-response-advisor/internal/adapter/llm"
	"github.com/couchcryptid/disaster-response-advisor/internal/adapter/mapbox"
	"github.com/couchcryptid/disaster-response-advisor/internal/adapter/nominatim"
	"github.com/couchcryptid/disaster-response-advisor/internal/adapter/overpass"
	"github.com/couchcryptid/disaster-response-advisor/internal/adapter/postgis"
	"github.com/couchcryptid/disaster-response-advisor/internal/config"
	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
	"github.com/couchcryptid/disaster-response-advisor/internal/extract"
	"github.com/couchcryptid/disaster-response-advisor/internal/infrastructure"
	"github.com/couchcryptid/disaster-response-advisor/internal/observability"
	"github.com/couchcryptid/disaster-response-advisor/internal/pipeline"
	"github.com/couchcryptid/disaster-response-advisor/internal/resolver"
)

// Engine is a configured Advisor plus the resources backing it.
type Engine struct {
	Advisor *pipeline.Advisor

	checks  []sharedobs.ReadinessChecker
	closers []func()
}

// CheckReadiness reports the first failing dependency check.
func (e *Engine) CheckReadiness(ctx context.Context) error {
	for _, c := range e.checks {
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}

// AddReadinessCheck registers an extra readiness dependency, such as the
// streaming pipeline.
func (e *Engine) AddReadinessCheck(c sharedobs.ReadinessChecker) {
	e.checks = append(e.checks, c)
}

// Close releases provider resources in reverse order of acquisition.
func (e *Engine) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// Build wires providers selected by cfg into an Engine.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*Engine, error) {
	e := &Engine{}

	geocoder, err := buildGeocoder(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	finder, err := e.buildFinder(ctx, cfg, logger)
	if err != nil {
		e.Close()
		return nil, err
	}
	index, err := infrastructure.New(finder, cfg.PlacesCacheSize, cfg.PlacesTimeout, logger, metrics)
	if err != nil {
		e.Close()
		return nil, err
	}

	primary, err := buildModel(ctx, cfg)
	if err != nil {
		e.Close()
		return nil, err
	}

	fallback := domain.Geo{Lat: cfg.DefaultLat, Lon: cfg.DefaultLon}
	e.Advisor = pipeline.NewAdvisor(
		extract.NewWithFallback(primary, logger, metrics),
		resolver.New(geocoder, fallback, cfg.GeocodeTimeout, logger),
		index,
		cfg.SearchRadiusMeters,
		logger,
		metrics,
	)

	logger.Info("advisory engine configured",
		"geocoder", cfg.GeocoderProvider,
		"places", cfg.PlacesProvider,
		"llm", cfg.LLMProvider,
		"search_radius_m", cfg.SearchRadiusMeters,
	)
	return e, nil
}

func buildGeocoder(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (domain.Geocoder, error) {
	var inner domain.Geocoder
	switch cfg.GeocoderProvider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderMapbox:
		inner = mapbox.NewClient(cfg.MapboxToken, cfg.GeocodeTimeout, metrics, logger)
	default:
		inner = nominatim.NewClient(cfg.NominatimURL, cfg.NominatimUserAgent, cfg.GeocodeTimeout, metrics, logger)
	}

	cached, err := geocache.New(inner, cfg.GeocodeCacheSize, metrics)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func (e *Engine) buildFinder(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.PlaceFinder, error) {
	switch cfg.PlacesProvider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderPostGIS:
		pool, err := pgxpool.New(ctx, cfg.PostGISDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgis: %w", err)
		}
		e.closers = append(e.closers, pool.Close)

		finder := postgis.NewFinder(pool)
		if err := finder.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate postgis: %w", err)
		}
		e.checks = append(e.checks, finder)
		return finder, nil
	default:
		return overpass.NewClient(cfg.OverpassURL, cfg.PlacesTimeout, logger), nil
	}
}

func buildModel(ctx context.Context, cfg *config.Config) (extract.Extractor, error) {
	var gen domain.TextGenerator
	switch cfg.LLMProvider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderAnthropic:
		gen = llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.LLMModel)
	case config.ProviderGemini:
		g, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.LLMModel, "")
		if err != nil {
			return nil, err
		}
		gen = g
	default:
		return nil, errors.New("unsupported LLM_PROVIDER")
	}
	return extract.NewModel(gen, cfg.LLMTimeout), nil
}
