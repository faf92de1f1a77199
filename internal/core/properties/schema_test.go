package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDuplicate(t *testing.T) {
	_, err := Register("dup", Bool("a"), Float("a"))
	assert.ErrorIs(t, err, ErrDuplicateProperty)
}

func TestRegisterInvalid(t *testing.T) {
	_, err := Register("bad", Enum("e"))
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = Register("bad", Definition{Name: "x", Kind: Kind(42)})
	assert.ErrorIs(t, err, ErrUnknownPropertyKind)

	_, err = Register("bad", Definition{Name: "", Kind: KindInt})
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestLookup(t *testing.T) {
	s := testSchema(t)

	i, kind, err := s.Lookup("geyser:he_rx")
	require.NoError(t, err)
	assert.Equal(t, 4, i)
	assert.Equal(t, KindFloat, kind)

	_, _, err = s.Lookup("geyser:nope")
	assert.ErrorIs(t, err, ErrUnknownProperty)
}

func TestSchemaIsolatedFromCallerSlices(t *testing.T) {
	values := []string{"a", "b"}
	s, err := Register("iso", Enum("e", values...))
	require.NoError(t, err)

	values[0] = "z"
	assert.Equal(t, []string{"a", "b"}, s.Definition(0).Values)
}

func TestFingerprint(t *testing.T) {
	a := MustRegister("f", Bool("x"), Float("y"))
	b := MustRegister("f", Bool("x"), Float("y"))
	c := MustRegister("f", Float("y"), Bool("x"))
	d := MustRegister("f", Enum("x", "one"), Float("y"))

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("boolean")
	require.NoError(t, err)
	assert.Equal(t, KindBoolean, k)

	_, err = ParseKind("string")
	assert.ErrorIs(t, err, ErrUnknownPropertyKind)
}

func TestBuiltinRegistry(t *testing.T) {
	reg, err := BuildRegistry(map[string][]Definition{
		ArmorStandFamily: {Int("custom:pose")},
		"villager":       {Enum("custom:profession", "farmer", "smith")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{ArmorStandFamily, DisplayFamily, "villager"}, reg.Families())

	stand := reg.Schema(ArmorStandFamily)
	require.NotNil(t, stand)

	i, kind, err := stand.Lookup(ArmorStandSmall)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	assert.Equal(t, KindBoolean, kind)

	i, _, err = stand.Lookup("custom:pose")
	require.NoError(t, err)
	assert.Equal(t, 3+3*len(ArmorStandParts), i)

	display := reg.Schema(DisplayFamily)
	require.NotNil(t, display)
	_, kind, err = display.Lookup(DisplayType)
	require.NoError(t, err)
	assert.Equal(t, KindEnum, kind)

	assert.Nil(t, reg.Schema("pig"))
}

func TestBuiltinRegistryRejectsClash(t *testing.T) {
	_, err := BuildRegistry(map[string][]Definition{
		ArmorStandFamily: {Float(ArmorStandSmall)},
	})
	assert.ErrorIs(t, err, ErrDuplicateProperty)
}

func TestNewRegistryDuplicateFamily(t *testing.T) {
	_, err := NewRegistry(MustRegister("a"), MustRegister("a"))
	assert.ErrorIs(t, err, ErrDuplicateFamily)
}
