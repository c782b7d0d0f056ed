//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/surf-forecast-etl/internal/adapter/kafka"
	"github.com/couchcryptid/surf-forecast-etl/internal/adapter/stormglass"
	"github.com/couchcryptid/surf-forecast-etl/internal/config"
	"github.com/couchcryptid/surf-forecast-etl/internal/domain"
	"github.com/couchcryptid/surf-forecast-etl/internal/observability"
	"github.com/couchcryptid/surf-forecast-etl/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const (
	testSinkTopic = "test-surf-forecasts"
	kafkaImage    = "confluentinc/confluent-local:7.5.0"
	mockDir       = "../../data/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, kafkaImage, tckafka.WithClusterID("surf-forecast-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// fakeStormGlass serves the raw fixture for manly and rejects every other
// coordinate with a 429.
func fakeStormGlass(t *testing.T, okLat float64) *httptest.Server {
	t.Helper()
	raw, err := os.ReadFile(mockDir + "/stormglass_weather_3_hours.json")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("lat") != strconv.FormatFloat(okLat, 'f', -1, 64) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"errors":["Rate Limit reached"]}`)) //nolint:errcheck // test server
			return
		}
		w.Write(raw) //nolint:errcheck // test server
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestPollerPublishesToKafka wires a fake StormGlass API, the client, the
// poller, and the Kafka writer against a real broker, then consumes the
// published forecast.
func TestPollerPublishesToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	manly := domain.Spot{Name: "manly", Lat: -33.792726, Lng: 151.289824}
	bondi := domain.Spot{Name: "bondi", Lat: -33.8915, Lng: 151.2767}
	api := fakeStormGlass(t, manly.Lat)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}
	metrics := observability.NewMetricsForTesting()

	client, err := stormglass.NewClient(stormglass.Options{
		BaseURL:   api.URL,
		Token:     "integration-token",
		Transport: stormglass.NewHTTPTransport(5 * time.Second),
		Logger:    discardLogger(),
		Metrics:   metrics,
	})
	require.NoError(t, err)
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	poller := pipeline.New(client, writer, discardLogger(), metrics, pipeline.Options{
		Spots:    []domain.Spot{manly, bondi},
		Source:   domain.SourceNOAA,
		Interval: time.Hour,
	})

	require.Equal(t, 1, poller.PollOnce(ctx), "only manly should be published")
	require.NoError(t, poller.CheckReadiness(ctx))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "manly", string(msg.Key))
	assert.Equal(t, "manly", headers[kafka.HeaderSpot])
	assert.Equal(t, "noaa", headers[kafka.HeaderSource])
	_, err = time.Parse(time.RFC3339, headers[kafka.HeaderFetchedAt])
	assert.NoError(t, err, "fetched_at should be valid RFC3339")

	var forecast domain.SpotForecast
	require.NoError(t, json.Unmarshal(msg.Value, &forecast))
	assert.Equal(t, manly, forecast.Spot)
	require.Len(t, forecast.Points, 3)
	assert.Equal(t, "2020-04-26T00:00:00+00:00", forecast.Points[0].Time)
	assert.Equal(t, 0.47, forecast.Points[0].WaveHeight)
	assert.Equal(t, 5.9, forecast.Points[0].WindSpeed)
}
