package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/disaster-response-advisor/internal/config"
	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

// Writer produces advisory messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes advisories to the sink topic in a single
// WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, advisories []domain.Advisory) error {
	if len(advisories) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(advisories))
	for i := range advisories {
		msg, err := serializeToMessage(advisories[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Advisory into a Kafka message keyed by report ID.
func serializeToMessage(a domain.Advisory) (kafkago.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize advisory: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(a.ReportID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "disaster_type", Value: []byte(a.Event.Type)},
			{Key: "generated_at", Value: []byte(a.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
