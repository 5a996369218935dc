//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/spf13/cobra"

	"github.com/cyface-de/datacapturing/internal/cmd"
	"github.com/cyface-de/datacapturing/internal/cmd/server"
	"github.com/cyface-de/datacapturing/internal/config"
	"github.com/cyface-de/datacapturing/internal/core"
	"github.com/cyface-de/datacapturing/internal/handler"
)

func wireCmd() (*cobra.Command, func(), error) {
	panic(wire.Build(
		newCmd,
		config.ProviderSet,
	))
}

func wireServer(core.Version) (*server.Server, func(), error) {
	panic(wire.Build(
		cmd.ProviderSet,
		handler.ProviderSet,
		core.ProviderSet,
	))
}
