// Package handler implements the HTTP handlers that form the server's
// introspection API. Each handler translates between JSON payloads and
// the domain use-cases defined in package core.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/authn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/cyface-de/datacapturing/internal/core"
	"github.com/cyface-de/datacapturing/internal/middleware"
)

// meterScope is the instrumentation scope for handler metrics.
const meterScope = "github.com/cyface-de/datacapturing/internal/handler"

// IdentityService exposes the build identity and compatibility checks
// over HTTP.
type IdentityService struct {
	identity *core.IdentityUseCase
	checks   metric.Int64Counter
	log      *slog.Logger
}

// NewIdentityService returns an IdentityService backed by the given
// use-case. The compatibility-check counter is created on the global
// meter provider; metrics are recorded once the server installs a real
// provider during mount.
func NewIdentityService(identity *core.IdentityUseCase) (*IdentityService, error) {
	checks, err := otel.Meter(meterScope).Int64Counter(
		"datacapturing_compatibility_checks_total",
		metric.WithDescription("Number of compatibility checks served, by verdict."),
	)
	if err != nil {
		return nil, fmt.Errorf("create compatibility counter: %w", err)
	}

	return &IdentityService{
		identity: identity,
		checks:   checks,
		log:      slog.Default().With("component", "identity-handler"),
	}, nil
}

// Register mounts the identity routes on the mux.
func (s *IdentityService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /v1/version", s.handleVersion)
	mux.HandleFunc("GET /v1/compatibility", s.handleCompatibility)
}

func (s *IdentityService) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion returns the process identity snapshot. The build
// fields are constant for the process lifetime.
func (s *IdentityService) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.identity.Identity())
}

// handleCompatibility compares the caller-reported client_version
// against the server build and returns a verdict.
func (s *IdentityService) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	clientVersion := r.URL.Query().Get("client_version")

	compat, err := s.identity.CheckCompatibility(clientVersion)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.checks.Add(r.Context(), 1,
		metric.WithAttributes(attribute.String("verdict", string(compat.Verdict))))

	if info, ok := authn.GetInfo(r.Context()).(middleware.UserInfo); ok {
		s.log.Debug("compatibility check",
			"subject", info.Subject,
			"client_version", compat.ClientVersion,
			"verdict", compat.Verdict,
		)
	}

	writeJSON(w, http.StatusOK, compat)
}

// errorBody is the JSON shape of all handler error responses.
type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors to HTTP status codes. The mapping
// lives here so the core package stays free of transport concerns.
func (s *IdentityService) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var invalid *core.ErrInvalidInput
	if errors.As(err, &invalid) {
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}

	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding failures past WriteHeader cannot be reported to the
	// client; the payloads here are small structs that marshal
	// reliably.
	_ = json.NewEncoder(w).Encode(v)
}
