package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "surf_forecast"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Provider metrics.
	ProviderRequests    *prometheus.CounterVec // labels: outcome={success,response_error,request_error}
	ProviderAPIDuration prometheus.Histogram
	HoursReceived       prometheus.Counter
	HoursDropped        prometheus.Counter

	// Poller metrics.
	PollerRunning      prometheus.Gauge
	PollCycleDuration  prometheus.Histogram
	SpotFetchErrors    *prometheus.CounterVec // labels: kind={response_error,request_error,other}
	ForecastsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.ProviderRequests,
		m.ProviderAPIDuration,
		m.HoursReceived,
		m.HoursDropped,
		m.PollerRunning,
		m.PollCycleDuration,
		m.SpotFetchErrors,
		m.ForecastsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "StormGlass point requests by outcome.",
		}, []string{"outcome"}),
		ProviderAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_api_duration_seconds",
			Help:      "StormGlass point request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		HoursReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hours_received_total",
			Help:      "Forecast hours received from the provider.",
		}),
		HoursDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hours_dropped_total",
			Help:      "Forecast hours dropped for missing trusted-source values.",
		}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "poller_running",
			Help:      "1 when the spot poller is active, 0 when shut down.",
		}),
		PollCycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_cycle_duration_seconds",
			Help:      "Duration of a complete fetch-and-publish cycle over all spots.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		SpotFetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spot_fetch_errors_total",
			Help:      "Spot forecast fetch failures by error kind.",
		}, []string{"kind"}),
		ForecastsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecasts_published_total",
			Help:      "Spot forecasts written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed writes to the sink topic.",
		}),
	}
}
