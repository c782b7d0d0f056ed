package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("forecast fetched", "spot", "manly")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "forecast fetched", entry["msg"])
	assert.Equal(t, "manly", entry["spot"])
}

func TestNewLoggerTo_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "debug", "text")

	logger.Debug("poll tick")

	assert.Contains(t, buf.String(), "msg=\"poll tick\"")
}

func TestNewLoggerTo_KeepsDefault(t *testing.T) {
	before := slog.Default()

	_ = NewLoggerTo(&bytes.Buffer{}, "info", "json")

	assert.Same(t, before, slog.Default())
}

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.ProviderRequests.WithLabelValues("success").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.ProviderRequests.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ProviderRequests.WithLabelValues("success")))
}
