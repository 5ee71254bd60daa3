package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillcoder/procadmin/internal/infra/shutdown"
)

const defaultMetricsPort = "9090"

// MetricsServer serves Prometheus metrics on a dedicated port. Its Ping is
// registered as a /-/readyz check of the management server.
type MetricsServer struct {
	*endpoint

	port     string
	gatherer prometheus.Gatherer
	reg      prometheus.Registerer
}

// NewMetricsServer creates a metrics server for the default registry.
func NewMetricsServer(logger *slog.Logger, port string) *MetricsServer {
	if port == "" {
		port = defaultMetricsPort
	}

	return &MetricsServer{
		endpoint: newEndpoint(logger, "metrics-server"),
		port:     port,
		gatherer: prometheus.DefaultGatherer,
		reg:      prometheus.DefaultRegisterer,
	}
}

var _ shutdown.Shutdowner = (*MetricsServer)(nil)

// Name returns the name of the metrics server component.
func (s *MetricsServer) Name() string {
	return "metrics-server"
}

// Handler serves GET /metrics in the text or OpenMetrics format.
func (s *MetricsServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.InstrumentMetricHandler(
		s.reg,
		promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}),
	))

	return mux
}

// Start binds the metrics port and serves in a goroutine.
func (s *MetricsServer) Start(ctx context.Context) error {
	return s.listen(ctx, s.port, s.Handler())
}

// Shutdown gracefully shuts down the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.stop(ctx, nil)
}
