// Package cmd defines the Cobra subcommands (server, version) and the
// Wire provider set for the CLI layer. It bridges configuration,
// dependency injection, and the transport/application layers.
package cmd

import (
	"github.com/google/wire"

	"github.com/cyface-de/datacapturing/internal/cmd/server"
)

// ProviderSet is the Wire provider set for the CLI layer.
var ProviderSet = wire.NewSet(
	server.NewServer,
	server.NewHandler,
)
