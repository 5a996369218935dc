// Package server implements the introspection runtime that serves the
// build-identity API over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cyface-de/datacapturing/internal/middleware"
	"github.com/cyface-de/datacapturing/internal/transport"
	"github.com/cyface-de/datacapturing/internal/transport/http"
)

// Config holds the runtime parameters for a Server.
type Config struct {
	Address        string
	AllowedOrigins []string
	OIDCIssuerURL  string
	OIDCClientID   string
}

// Server binds the HTTP listener and runs it under the managed
// transport lifecycle.
type Server struct {
	handler *Handler
}

// NewServer returns a Server wired to the given handler.
func NewServer(handler *Handler) *Server {
	return &Server{handler: handler}
}

// Run starts the HTTP server. It blocks until ctx is cancelled or an
// unrecoverable error occurs. Health, version, and metrics endpoints
// are public; the rest of the API requires authentication when OIDC
// is configured.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	opts := []http.ServerOption{
		http.WithAddress(cfg.Address),
		http.WithAllowedOrigins(cfg.AllowedOrigins),
		http.WithMount(s.handler.Mount),
	}

	if cfg.OIDCIssuerURL != "" {
		oidc, err := middleware.NewOIDC(cfg.OIDCIssuerURL, cfg.OIDCClientID)
		if err != nil {
			return fmt.Errorf("failed to create OIDC middleware: %w", err)
		}
		opts = append(opts,
			http.WithAuthMiddleware(oidc),
			http.WithPublicPaths([]string{
				"/healthz",
				"/v1/version",
				"/metrics",
			}),
		)
	} else {
		slog.Warn("OIDC issuer not configured; serving the introspection API without authentication")
	}

	httpSrv, err := http.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	return transport.Serve(ctx, httpSrv)
}
