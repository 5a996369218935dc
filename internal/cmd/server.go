package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyface-de/datacapturing/internal/cmd/server"
	"github.com/cyface-de/datacapturing/internal/config"
)

// ServerInjector defers server construction until the subcommand
// actually runs, so `datacapturing version` never pays for it.
type ServerInjector func() (*server.Server, func(), error)

// NewServerCommand returns the server subcommand.
func NewServerCommand(conf *config.Config, newServer ServerInjector) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "server",
		Short:   "Start the introspection server that exposes the build identity over HTTP",
		Example: "datacapturing server --address=:8080 --oidc-issuer-url=https://auth.cyface.de/realms/cyface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, cleanup, err := newServer()
			if err != nil {
				return fmt.Errorf("failed to initialize server: %w", err)
			}
			defer cleanup()

			cfg := server.Config{
				Address:        conf.ServerAddress(),
				AllowedOrigins: conf.ServerAllowedOrigins(),
				OIDCIssuerURL:  conf.ServerOIDCIssuerURL(),
				OIDCClientID:   conf.ServerOIDCClientID(),
			}

			return srv.Run(cmd.Context(), cfg)
		},
	}

	if err := conf.BindFlags(cmd.Flags(), config.ServerOptions); err != nil {
		return nil, err
	}

	return cmd, nil
}
