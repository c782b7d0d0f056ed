package config

import (
	"errors"
	"fmt"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/couchcryptid/surf-forecast-etl/internal/domain"
	"github.com/spf13/viper"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// StormGlass provider configuration.
	StormGlassBaseURL string
	StormGlassToken   string
	StormGlassSource  domain.Source
	StormGlassTimeout time.Duration

	// Spot polling configuration.
	Spots        []domain.Spot
	PollEnabled  bool
	PollInterval time.Duration

	KafkaBrokers   []string
	KafkaSinkTopic string
}

func defaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORMGLASS_BASE_URL", "https://api.stormglass.io/v2")
	v.SetDefault("STORMGLASS_SOURCE", "noaa")
	v.SetDefault("STORMGLASS_TIMEOUT", "10s")
	v.SetDefault("POLL_INTERVAL", "1h")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_SINK_TOPIC", "surf-forecasts")
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	stormglassTimeout, err := parsePositiveDuration(v, "STORMGLASS_TIMEOUT")
	if err != nil {
		return nil, err
	}
	pollInterval, err := parsePositiveDuration(v, "POLL_INTERVAL")
	if err != nil {
		return nil, err
	}

	source, err := domain.ParseSource(v.GetString("STORMGLASS_SOURCE"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORMGLASS_SOURCE: %w", err)
	}

	spots, err := domain.ParseSpots(v.GetString("SPOTS"))
	if err != nil {
		return nil, fmt.Errorf("invalid SPOTS: %w", err)
	}

	pollEnabled := len(spots) > 0
	if v.IsSet("POLL_ENABLED") {
		pollEnabled = v.GetString("POLL_ENABLED") == "true"
	}

	cfg := &Config{
		HTTPAddr:        v.GetString("HTTP_ADDR"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		ShutdownTimeout: shutdownTimeout,

		StormGlassBaseURL: v.GetString("STORMGLASS_BASE_URL"),
		StormGlassToken:   v.GetString("STORMGLASS_TOKEN"),
		StormGlassSource:  source,
		StormGlassTimeout: stormglassTimeout,

		Spots:        spots,
		PollEnabled:  pollEnabled,
		PollInterval: pollInterval,

		KafkaBrokers:   sharedcfg.ParseBrokers(v.GetString("KAFKA_BROKERS")),
		KafkaSinkTopic: v.GetString("KAFKA_SINK_TOPIC"),
	}

	if cfg.StormGlassBaseURL == "" {
		return nil, errors.New("STORMGLASS_BASE_URL is required")
	}
	if cfg.PollEnabled && len(cfg.Spots) == 0 {
		return nil, errors.New("POLL_ENABLED is true but SPOTS is not set")
	}
	if cfg.PollEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.PollEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func parsePositiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
