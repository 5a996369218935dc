package server

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"

	"github.com/cyface-de/datacapturing/internal/handler"
	"github.com/cyface-de/datacapturing/pkg/version"
)

// Handler owns the route table of the introspection server.
type Handler struct {
	identity *handler.IdentityService
}

// NewHandler returns a Handler serving the given identity service.
func NewHandler(identity *handler.IdentityService) *Handler {
	return &Handler{
		identity: identity,
	}
}

// Mount registers all handlers and observability endpoints on the mux.
func (h *Handler) Mount(mux *http.ServeMux) error {
	if err := h.registerOpsHandlers(mux); err != nil {
		return err
	}

	h.identity.Register(mux)

	return nil
}

// registerOpsHandlers sets up the metrics endpoint: a dedicated
// prometheus registry carrying the build_info gauge, exported together
// with the otel instruments that back the handler counters.
func (h *Handler) registerOpsHandlers(mux *http.ServeMux) error {
	reg := prometheus.NewRegistry()

	buildInfo := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "datacapturing_build_info",
		Help: "Build identity of the running binary; the value is always 1.",
	}, []string{"version", "commit", "go_version"})
	buildInfo.WithLabelValues(version.String(), version.Commit(), runtime.Version()).Set(1)
	if err := reg.Register(buildInfo); err != nil {
		return fmt.Errorf("register build_info collector: %w", err)
	}

	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return fmt.Errorf("create prometheus exporter: %w", err)
	}
	otel.SetMeterProvider(metric.NewMeterProvider(metric.WithReader(exporter)))

	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return nil
}
