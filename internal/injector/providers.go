package injector

import (
	"github.com/google/wire"

	"github.com/Rakise/Geyser/internal/config"
	"github.com/Rakise/Geyser/internal/core/entity"
	"github.com/Rakise/Geyser/internal/core/identifier"
	"github.com/Rakise/Geyser/internal/core/observability/log"
	"github.com/Rakise/Geyser/internal/core/packet"
	"github.com/Rakise/Geyser/internal/core/properties"
	"github.com/Rakise/Geyser/internal/server"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideProperties,
	ProvideDefinitions,
	ProvideServer,
)

func ProvideLogger(cfg config.Config) (*log.Logger, func()) {
	logger := log.New(cfg.Level())
	return logger, func() { _ = logger.Sync() }
}

// ProvideProperties builds the property registry from the built-in families
// and the configured extras.
func ProvideProperties(cfg config.Config) (*properties.Registry, error) {
	extra, err := cfg.PropertyDefinitions()
	if err != nil {
		return nil, err
	}
	return properties.BuildRegistry(extra)
}

// ProvideDefinitions registers the entity types with the process-wide type registry.
func ProvideDefinitions() entity.Definitions {
	return entity.NewDefinitions(identifier.NewRegistry(nil))
}

func ProvideServer(cfg config.Config, logger log.Log, props *properties.Registry, defs entity.Definitions) (*server.Server, func()) {
	s := server.NewServer(cfg, logger, props, defs, server.WithSink(packet.LogSink(logger)))
	return s, func() { _ = s.Close() }
}
