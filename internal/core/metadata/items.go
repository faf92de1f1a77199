package metadata

import "github.com/Rakise/Geyser/internal/core/packet"

// ItemStack is an item in source-protocol form. A zero ID means empty.
type ItemStack struct {
	ID    int32
	Count int32
	NBT   map[string]any
}

func (s ItemStack) IsEmpty() bool { return s.ID == 0 || s.Count <= 0 }

// ItemTranslator maps source items and block states to target items. The
// mapping tables live outside the core.
type ItemTranslator interface {
	TranslateItem(stack ItemStack) packet.ItemData
	TranslateBlock(state int32) packet.ItemData
}

// PassthroughTranslator keeps ids as they are. It is used when no mapping
// tables are configured.
type PassthroughTranslator struct{}

func (PassthroughTranslator) TranslateItem(stack ItemStack) packet.ItemData {
	if stack.IsEmpty() {
		return packet.Air
	}
	count := stack.Count
	if count > 255 {
		count = 255
	}
	return packet.ItemData{ID: stack.ID, Count: uint8(count)}
}

func (PassthroughTranslator) TranslateBlock(state int32) packet.ItemData {
	if state <= 0 {
		return packet.Air
	}
	return packet.ItemData{ID: state, Count: 1, BlockRuntimeID: state}
}
