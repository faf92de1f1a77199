package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rakise/Geyser/internal/core/packet"
)

func TestPassthroughTranslator(t *testing.T) {
	var tr ItemTranslator = PassthroughTranslator{}

	assert.Equal(t, packet.Air, tr.TranslateItem(ItemStack{}))
	assert.Equal(t, packet.Air, tr.TranslateItem(ItemStack{ID: 5, Count: 0}))
	assert.Equal(t, packet.ItemData{ID: 5, Count: 255}, tr.TranslateItem(ItemStack{ID: 5, Count: 1000}))
	assert.Equal(t, packet.ItemData{ID: 9, Count: 1, BlockRuntimeID: 9}, tr.TranslateBlock(9))
	assert.True(t, tr.TranslateBlock(0).IsAir())
}

func TestEventRouting(t *testing.T) {
	var ev Event = Flags{Target: On(3), Value: FlagInvisible}
	assert.Equal(t, int32(3), ev.EntityID())
	assert.Equal(t, KindFlags, ev.Kind())
	assert.Equal(t, string(KindFlags), ev.Type())

	assert.Equal(t, "ll", PartLeftLeg.Prefix())
	assert.Equal(t, "boots", SlotBoots.String())
	assert.Len(t, Kinds, 13)
}
