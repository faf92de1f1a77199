//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/Rakise/Geyser/internal/config"
	"github.com/Rakise/Geyser/internal/server"
)

// InitializeServer builds a server from a loaded configuration.
func InitializeServer(cfg config.Config) (*server.Server, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
