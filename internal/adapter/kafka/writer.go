package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/surf-forecast-etl/internal/config"
	"github.com/couchcryptid/surf-forecast-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Header keys attached to every forecast message.
const (
	HeaderSpot      = "spot"
	HeaderSource    = "source"
	HeaderFetchedAt = "fetched_at"
)

// Writer produces spot forecasts to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes the forecasts and writes them in a single
// WriteMessages call. Messages are keyed by spot name so every forecast for
// a spot lands on the same partition.
func (w *Writer) Publish(ctx context.Context, forecasts []domain.SpotForecast) error {
	if len(forecasts) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(forecasts))
	for i := range forecasts {
		msg, err := serializeToMessage(forecasts[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write forecasts to %s: %w", w.writer.Topic, err)
	}
	w.logger.Debug("forecasts published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func serializeToMessage(f domain.SpotForecast) (kafkago.Message, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forecast for %s: %w", f.Spot.Name, err)
	}
	return kafkago.Message{
		Key:   []byte(f.Spot.Name),
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderSpot, Value: []byte(f.Spot.Name)},
			{Key: HeaderSource, Value: []byte(f.Source)},
			{Key: HeaderFetchedAt, Value: []byte(f.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
