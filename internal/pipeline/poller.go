package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/surf-forecast-etl/internal/domain"
	"github.com/couchcryptid/surf-forecast-etl/internal/observability"
	"github.com/jonboulle/clockwork"
)

// ForecastFetcher returns normalized forecast points for a coordinate.
type ForecastFetcher interface {
	FetchPoints(ctx context.Context, lat, lng float64) ([]domain.ForecastPoint, error)
}

// Publisher writes spot forecasts to the destination.
type Publisher interface {
	Publish(ctx context.Context, forecasts []domain.SpotForecast) error
}

// Options configures a Poller.
type Options struct {
	Spots    []domain.Spot
	Source   domain.Source
	Interval time.Duration
	Clock    clockwork.Clock
}

// Poller periodically fetches forecasts for each spot and publishes them.
type Poller struct {
	fetcher   ForecastFetcher
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	spots     []domain.Spot
	source    domain.Source
	interval  time.Duration
	clock     clockwork.Clock
	ready     atomic.Bool
}

// New creates a Poller. A nil Clock uses the real clock.
func New(f ForecastFetcher, p Publisher, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Poller {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Poller{
		fetcher:   f,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
		spots:     opts.Spots,
		source:    opts.Source,
		interval:  opts.Interval,
		clock:     clock,
	}
}

// CheckReadiness returns nil once at least one forecast has been published.
func (p *Poller) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no forecast has been published yet")
	}
	return nil
}

// Run polls every spot immediately and then once per interval until the
// context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", "spots", len(p.spots), "interval", p.interval, "source", p.source)
	p.metrics.PollerRunning.Set(1)
	defer p.metrics.PollerRunning.Set(0)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.PollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.PollOnce(ctx)
		}
	}
}

// PollOnce fetches every spot once and publishes the successful results.
// Failed spots are logged and skipped until the next cycle. It returns the
// number of forecasts published. Every cycle is timed, including failed ones.
func (p *Poller) PollOnce(ctx context.Context) int {
	start := p.clock.Now()
	defer func() {
		p.metrics.PollCycleDuration.Observe(p.clock.Since(start).Seconds())
	}()

	forecasts := make([]domain.SpotForecast, 0, len(p.spots))
	for _, spot := range p.spots {
		if ctx.Err() != nil {
			return 0
		}
		points, err := p.fetcher.FetchPoints(ctx, spot.Lat, spot.Lng)
		if err != nil {
			if ctx.Err() != nil {
				return 0
			}
			kind := errorKind(err)
			p.logger.Warn("fetch forecast failed, skipping spot",
				"spot", spot.Name,
				"kind", kind,
				"error", err,
			)
			p.metrics.SpotFetchErrors.WithLabelValues(kind).Inc()
			continue
		}
		forecasts = append(forecasts, domain.SpotForecast{
			Spot:      spot,
			Source:    p.source,
			FetchedAt: p.clock.Now().UTC(),
			Points:    points,
		})
	}

	if len(forecasts) == 0 {
		return 0
	}

	if err := p.publisher.Publish(ctx, forecasts); err != nil {
		p.logger.Error("publish forecasts failed", "error", err, "forecasts", len(forecasts))
		p.metrics.PublishErrors.Inc()
		return 0
	}

	p.metrics.ForecastsPublished.Add(float64(len(forecasts)))
	p.ready.Store(true)
	return len(forecasts)
}

func errorKind(err error) string {
	var respErr *domain.ResponseError
	if errors.As(err, &respErr) {
		return "response_error"
	}
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		return "request_error"
	}
	return "other"
}
