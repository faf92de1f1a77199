package entity

import (
	"github.com/Rakise/Geyser/internal/core/identifier"
	"github.com/Rakise/Geyser/internal/core/properties"
)

// Kind selects the entity implementation a session spawns.
type Kind uint8

const (
	KindArmorStand Kind = iota
	KindItemDisplay
	KindBlockDisplay
)

func (k Kind) String() string {
	switch k {
	case KindArmorStand:
		return "armor_stand"
	case KindItemDisplay:
		return "item_display"
	case KindBlockDisplay:
		return "block_display"
	default:
		return "unknown"
	}
}

// Definition is the static description of an entity type.
type Definition struct {
	Type   identifier.Descriptor
	Family string
	Width  float32
	Height float32
}

// Definitions holds the definitions of every kind the core translates.
type Definitions struct {
	ArmorStand   Definition
	ItemDisplay  Definition
	BlockDisplay Definition
}

// NewDefinitions registers the target entity types with reg.
func NewDefinitions(reg *identifier.Registry) Definitions {
	return Definitions{
		ArmorStand: Definition{
			Type:   reg.Register("minecraft:armor_stand", true, true),
			Family: properties.ArmorStandFamily,
			Width:  0.5,
			Height: 1.975,
		},
		ItemDisplay: Definition{
			Type:   reg.Register("geyser:item_display", false, true),
			Family: properties.DisplayFamily,
		},
		BlockDisplay: Definition{
			Type:   reg.Register("geyser:block_display", false, true),
			Family: properties.DisplayFamily,
		},
	}
}

// Of returns the definition for kind.
func (d Definitions) Of(kind Kind) (Definition, bool) {
	switch kind {
	case KindArmorStand:
		return d.ArmorStand, true
	case KindItemDisplay:
		return d.ItemDisplay, true
	case KindBlockDisplay:
		return d.BlockDisplay, true
	default:
		return Definition{}, false
	}
}
