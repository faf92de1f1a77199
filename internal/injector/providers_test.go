package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rakise/Geyser/internal/config"
	"github.com/Rakise/Geyser/internal/core/properties"
)

func TestProvideProperties(t *testing.T) {
	cfg := config.Default()
	cfg.Families = []config.FamilyConfig{{
		Name:       properties.DisplayFamily,
		Properties: []config.PropertyConfig{{Name: "custom:glow", Kind: "bool"}},
	}}

	reg, err := ProvideProperties(cfg)
	require.NoError(t, err)
	index, kind, err := reg.Schema(properties.DisplayFamily).Lookup("custom:glow")
	require.NoError(t, err)
	assert.Equal(t, 11, index)
	assert.Equal(t, properties.KindBoolean, kind)

	cfg.Families[0].Properties[0].Kind = "nope"
	_, err = ProvideProperties(cfg)
	assert.ErrorIs(t, err, properties.ErrUnknownPropertyKind)
}

func TestProvideDefinitionsDrawProcessWideIDs(t *testing.T) {
	a := ProvideDefinitions()
	b := ProvideDefinitions()
	assert.Equal(t, "minecraft:armor_stand", a.ArmorStand.Type.Identifier())
	assert.NotEqual(t, a.ArmorStand.Type.RuntimeID(), b.ArmorStand.Type.RuntimeID(),
		"type runtime ids are drawn from the process-wide allocator")
}

func TestInitializeServer(t *testing.T) {
	s, cleanup, err := InitializeServer(config.Default())
	require.NoError(t, err)
	defer cleanup()

	sess, err := s.OpenSession(nil)
	require.NoError(t, err)
	assert.NotNil(t, sess)
}
