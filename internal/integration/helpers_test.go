//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
	"github.com/couchcryptid/disaster-response-advisor/internal/extract"
	"github.com/couchcryptid/disaster-response-advisor/internal/infrastructure"
	"github.com/couchcryptid/disaster-response-advisor/internal/observability"
	"github.com/couchcryptid/disaster-response-advisor/internal/pipeline"
	"github.com/couchcryptid/disaster-response-advisor/internal/resolver"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node KRaft broker and returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("advisor-test"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// staticFinder returns one hospital per hospital query so advisories carry routes.
type staticFinder struct{}

func (staticFinder) FindPlaces(_ context.Context, center domain.Geo, _ int, category domain.Category) ([]domain.Place, error) {
	if category != domain.CategoryHospital {
		return nil, nil
	}
	return []domain.Place{{
		Name:     "Harbor Hospital",
		Tag:      "hospital",
		Position: &domain.Geo{Lat: center.Lat + 0.01, Lon: center.Lon},
	}}, nil
}

// newTransformer wires an Advisor with keyword extraction, no geocoder, and a
// static places provider.
func newTransformer(t *testing.T, metrics *observability.Metrics) *pipeline.ReportTransformer {
	t.Helper()

	logger := discardLogger()
	index, err := infrastructure.New(staticFinder{}, 16, time.Second, logger, metrics)
	require.NoError(t, err)

	advisor := pipeline.NewAdvisor(
		extract.NewWithFallback(nil, logger, metrics),
		resolver.New(nil, domain.Geo{Lat: 40.7128, Lon: -74.0060}, time.Second, logger),
		index,
		5000,
		logger,
		metrics,
	)
	return pipeline.NewTransformer(advisor)
}
