package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Provider names accepted by the *_PROVIDER variables.
const (
	ProviderNone      = "none"
	ProviderNominatim = "nominatim"
	ProviderMapbox    = "mapbox"
	ProviderOverpass  = "overpass"
	ProviderPostGIS   = "postgis"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	RateLimitRPS    int

	// Geocoding configuration.
	GeocoderProvider   string
	NominatimURL       string
	NominatimUserAgent string
	MapboxToken        string
	GeocodeTimeout     time.Duration
	GeocodeCacheSize   int
	DefaultLat         float64
	DefaultLon         float64

	// Critical-infrastructure lookup configuration.
	PlacesProvider     string
	OverpassURL        string
	PostGISDSN         string
	PlacesTimeout      time.Duration
	PlacesCacheSize    int
	SearchRadiusMeters int

	// Model-assisted extraction configuration.
	LLMProvider     string
	AnthropicAPIKey string
	GeminiAPIKey    string
	LLMModel        string
	LLMTimeout      time.Duration

	// Streaming pipeline configuration.
	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaSourceTopic   string
	KafkaSinkTopic     string
	KafkaGroupID       string
	BatchSize          int
	BatchFlushInterval time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	geocodeTimeout, err := parseDuration("GEOCODE_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	placesTimeout, err := parseDuration("PLACES_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	llmTimeout, err := parseDuration("LLM_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	rateLimit, err := parsePositiveInt("RATE_LIMIT_RPS", 5)
	if err != nil {
		return nil, err
	}
	geocodeCacheSize, err := parsePositiveInt("GEOCODE_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	placesCacheSize, err := parsePositiveInt("PLACES_CACHE_SIZE", 100)
	if err != nil {
		return nil, err
	}
	radius, err := parsePositiveInt("SEARCH_RADIUS_METERS", 5000)
	if err != nil {
		return nil, err
	}

	defaultLat, err := parseFloat("DEFAULT_LAT", 40.7128)
	if err != nil {
		return nil, err
	}
	defaultLon, err := parseFloat("DEFAULT_LON", -74.0060)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		RateLimitRPS:    rateLimit,

		GeocoderProvider:   sharedcfg.EnvOrDefault("GEOCODER_PROVIDER", ProviderNominatim),
		NominatimURL:       sharedcfg.EnvOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: sharedcfg.EnvOrDefault("NOMINATIM_USER_AGENT", "disaster-response-advisor"),
		MapboxToken:        os.Getenv("MAPBOX_TOKEN"),
		GeocodeTimeout:     geocodeTimeout,
		GeocodeCacheSize:   geocodeCacheSize,
		DefaultLat:         defaultLat,
		DefaultLon:         defaultLon,

		PlacesProvider:     sharedcfg.EnvOrDefault("PLACES_PROVIDER", ProviderOverpass),
		OverpassURL:        sharedcfg.EnvOrDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		PostGISDSN:         os.Getenv("POSTGIS_DSN"),
		PlacesTimeout:      placesTimeout,
		PlacesCacheSize:    placesCacheSize,
		SearchRadiusMeters: radius,

		LLMProvider:     sharedcfg.EnvOrDefault("LLM_PROVIDER", ProviderNone),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		LLMModel:        os.Getenv("LLM_MODEL"),
		LLMTimeout:      llmTimeout,

		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "disaster-reports"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "disaster-advisories"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "disaster-advisor"),
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.GeocoderProvider {
	case ProviderNone, ProviderNominatim:
	case ProviderMapbox:
		if c.MapboxToken == "" {
			return errors.New("GEOCODER_PROVIDER is mapbox but MAPBOX_TOKEN is not set")
		}
	default:
		return fmt.Errorf("invalid GEOCODER_PROVIDER: %q", c.GeocoderProvider)
	}

	switch c.PlacesProvider {
	case ProviderNone, ProviderOverpass:
	case ProviderPostGIS:
		if c.PostGISDSN == "" {
			return errors.New("PLACES_PROVIDER is postgis but POSTGIS_DSN is not set")
		}
	default:
		return fmt.Errorf("invalid PLACES_PROVIDER: %q", c.PlacesProvider)
	}

	switch c.LLMProvider {
	case ProviderNone:
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("LLM_PROVIDER is anthropic but ANTHROPIC_API_KEY is not set")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("LLM_PROVIDER is gemini but GEMINI_API_KEY is not set")
		}
	default:
		return fmt.Errorf("invalid LLM_PROVIDER: %q", c.LLMProvider)
	}

	if c.DefaultLat < -90 || c.DefaultLat > 90 {
		return errors.New("DEFAULT_LAT must be within [-90, 90]")
	}
	if c.DefaultLon < -180 || c.DefaultLon > 180 {
		return errors.New("DEFAULT_LON must be within [-180, 180]")
	}

	if c.KafkaEnabled {
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required")
		}
		if c.KafkaSourceTopic == "" {
			return errors.New("KAFKA_SOURCE_TOPIC is required")
		}
		if c.KafkaSinkTopic == "" {
			return errors.New("KAFKA_SINK_TOPIC is required")
		}
	}
	return nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return f, nil
}
