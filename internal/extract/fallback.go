package extract

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
	"github.com/couchcryptid/disaster-response-advisor/internal/observability"
)

// Extractor is a strategy that may fail.
type Extractor interface {
	Extract(ctx context.Context, report string) (domain.DisasterEvent, error)
}

// WithFallback tries an optional enrichment strategy and falls back to the
// keyword strategy on any failure. Its Extract never fails.
type WithFallback struct {
	primary Extractor
	floor   Keyword
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWithFallback composes primary over the keyword strategy. A nil primary
// means keyword extraction only.
func NewWithFallback(primary Extractor, logger *slog.Logger, metrics *observability.Metrics) *WithFallback {
	return &WithFallback{
		primary: primary,
		logger:  logger,
		metrics: metrics,
	}
}

// Extract returns the primary strategy's event when it succeeds, otherwise
// the keyword event.
func (w *WithFallback) Extract(ctx context.Context, report string) domain.DisasterEvent {
	if w.primary != nil {
		event, err := w.primary.Extract(ctx, report)
		if err == nil {
			w.metrics.Extractions.WithLabelValues("model", "success").Inc()
			return event
		}
		w.logger.Warn("model extraction failed, using keyword extraction", "error", err)
		w.metrics.Extractions.WithLabelValues("model", "fallback").Inc()
	}

	w.metrics.Extractions.WithLabelValues("keyword", "success").Inc()
	return w.floor.Parse(report)
}
