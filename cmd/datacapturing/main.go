// Package main is the entry point for the datacapturing binary. It
// supports two subcommands:
//
//   - server:  runs the introspection server (identity API + metrics)
//   - version: prints the build identity of the binary itself
//
// Dependencies are assembled via Google Wire; see wire.go.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cyface-de/datacapturing/internal/cmd"
	"github.com/cyface-de/datacapturing/internal/cmd/server"
	"github.com/cyface-de/datacapturing/internal/config"
	"github.com/cyface-de/datacapturing/internal/core"
	"github.com/cyface-de/datacapturing/pkg/version"
)

func main() {
	// Cancel on SIGINT (Ctrl+C) or SIGTERM (container runtime).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// Cobra is configured with SilenceErrors: true, so we
		// print the error here for consistent formatting.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires all dependencies and executes the root Cobra command.
func run(ctx context.Context) error {
	rootCmd, cleanup, err := wireCmd()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	return rootCmd.ExecuteContext(ctx)
}

// newCmd is a Wire provider that constructs the root Cobra command and
// registers the subcommands. The build version is captured by the
// closure passed to the server injector so the Injector signature
// stays free of globals.
func newCmd(conf *config.Config) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:           "datacapturing",
		Short:         "Cyface DataCapturing: build identity and runtime introspection.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	v := core.Version(version.String())

	serverCmd, err := cmd.NewServerCommand(conf, func() (*server.Server, func(), error) {
		return wireServer(v)
	})
	if err != nil {
		return nil, err
	}

	c.AddCommand(serverCmd, cmd.NewVersionCommand())

	return c, nil
}
