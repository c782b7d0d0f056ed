package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/surf-forecast-etl/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ForecastFetcher returns normalized forecast points for a coordinate.
type ForecastFetcher interface {
	FetchPoints(ctx context.Context, lat, lng float64) ([]domain.ForecastPoint, error)
}

// Server exposes health, readiness, metrics, and on-demand forecast endpoints.
type Server struct {
	httpServer *http.Server
	forecasts  ForecastFetcher
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /forecast routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, forecasts ForecastFetcher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		forecasts: forecasts,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /forecast", s.handleForecast)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleForecast serves GET /forecast?lat=..&lng=.. as a JSON array of
// forecast points. Upstream rejections map to 502 and transport failures
// to 503.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, lng, err := domain.ParseCoordinates(q.Get("lat"), q.Get("lng"))
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	points, err := s.forecasts.FetchPoints(r.Context(), lat, lng)
	if err != nil {
		status := forecastErrorStatus(err)
		s.logger.Warn("forecast request failed",
			"lat", lat,
			"lng", lng,
			"status", status,
			"error", err,
		)
		sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, points)
}

func forecastErrorStatus(err error) int {
	var respErr *domain.ResponseError
	if errors.As(err, &respErr) {
		return http.StatusBadGateway
	}
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
