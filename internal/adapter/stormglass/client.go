package stormglass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/surf-forecast-etl/internal/domain"
	"github.com/couchcryptid/surf-forecast-etl/internal/observability"
)

// API Docs: https://docs.stormglass.io/#/weather
const (
	// ProviderName is how the provider is named in error messages.
	ProviderName = "StormGlass"

	DefaultBaseURL = "https://api.stormglass.io/v2"
	DefaultSource  = domain.SourceNOAA

	pointPath = "/weather/point"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	Token     string
	Source    domain.Source
	Params    []string
	Transport Transport
	Logger    *slog.Logger
	Metrics   *observability.Metrics
}

// Client fetches StormGlass point forecasts and normalizes them. It holds
// only immutable configuration and is safe for concurrent use.
type Client struct {
	baseURL   string
	token     string
	source    domain.Source
	params    string
	transport Transport
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewClient creates a StormGlass client. An unknown Source is an error, since
// normalizing against it would drop every hour.
func NewClient(opts Options) (*Client, error) {
	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		token:     opts.Token,
		source:    opts.Source,
		params:    strings.Join(opts.Params, ","),
		transport: opts.Transport,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.source == "" {
		c.source = DefaultSource
	}
	source, err := domain.ParseSource(string(c.source))
	if err != nil {
		return nil, fmt.Errorf("stormglass client: %w", err)
	}
	c.source = source
	if c.params == "" {
		c.params = strings.Join(domain.Attributes, ",")
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(0)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.metrics == nil {
		c.metrics = observability.NewMetricsForTesting()
	}
	return c, nil
}

// Source returns the trusted source used for normalization.
func (c *Client) Source() domain.Source { return c.source }

// FetchPoints returns the normalized forecast for a coordinate. Hours without
// a full set of trusted-source values are left out. Provider failures are
// returned as *domain.ResponseError or *domain.RequestError.
func (c *Client) FetchPoints(ctx context.Context, lat, lng float64) ([]domain.ForecastPoint, error) {
	start := time.Now()
	res := c.transport.Get(ctx, c.pointURL(lat, lng), c.header())
	c.metrics.ProviderAPIDuration.Observe(time.Since(start).Seconds())

	switch res.Kind {
	case ResultOK:
	case ResultStatus:
		c.metrics.ProviderRequests.WithLabelValues("response_error").Inc()
		return nil, domain.NewResponseError(ProviderName, res.Status, res.Body)
	default:
		c.metrics.ProviderRequests.WithLabelValues("request_error").Inc()
		return nil, domain.NewRequestError(ProviderName, res.Err)
	}

	var raw domain.RawForecastResponse
	if err := json.Unmarshal(res.Body, &raw); err != nil {
		c.metrics.ProviderRequests.WithLabelValues("request_error").Inc()
		return nil, domain.NewRequestError(ProviderName, fmt.Errorf("decode response: %w", err))
	}

	points := domain.Normalize(raw, c.source)
	dropped := len(raw.Hours) - len(points)

	c.metrics.ProviderRequests.WithLabelValues("success").Inc()
	c.metrics.HoursReceived.Add(float64(len(raw.Hours)))
	c.metrics.HoursDropped.Add(float64(dropped))

	c.logger.Debug("stormglass forecast fetched",
		"lat", lat,
		"lng", lng,
		"source", c.source,
		"hours", len(raw.Hours),
		"dropped", dropped,
	)

	return points, nil
}

func (c *Client) pointURL(lat, lng float64) string {
	params := url.Values{
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lng":    {strconv.FormatFloat(lng, 'f', -1, 64)},
		"params": {c.params},
		"source": {string(c.source)},
	}
	return c.baseURL + pointPath + "?" + params.Encode()
}

func (c *Client) header() http.Header {
	h := http.Header{}
	if c.token != "" {
		h.Set("Authorization", c.token)
	}
	return h
}
