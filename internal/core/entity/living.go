package entity

import (
	"github.com/Rakise/Geyser/internal/core/metadata"
	"github.com/Rakise/Geyser/internal/core/packet"
)

// Living is an entity that wears equipment.
type Living struct {
	Base
	equipment [metadata.SlotCount]packet.ItemData
}

func newLiving(ctx *Context, def Definition, p Params) Living {
	return Living{Base: newBase(ctx, def, p)}
}

// Equipment returns the item in slot.
func (l *Living) Equipment(slot metadata.Slot) packet.ItemData {
	if int(slot) >= len(l.equipment) {
		return packet.Air
	}
	return l.equipment[slot]
}

func (l *Living) SetEquipment(slot metadata.Slot, item packet.ItemData) {
	if int(slot) >= len(l.equipment) {
		return
	}
	l.equipment[slot] = item
}

// HasEquipment reports whether any slot holds an item.
func (l *Living) HasEquipment() bool {
	for _, item := range l.equipment {
		if !item.IsAir() {
			return true
		}
	}
	return false
}

// UpdateEquipment sends the armor and both hands.
func (l *Living) UpdateEquipment() {
	if !l.valid {
		return
	}
	l.send(&packet.MobArmorEquipment{
		RuntimeID:  l.runtimeID,
		Helmet:     l.equipment[metadata.SlotHelmet],
		Chestplate: l.equipment[metadata.SlotChestplate],
		Leggings:   l.equipment[metadata.SlotLeggings],
		Boots:      l.equipment[metadata.SlotBoots],
	})
	l.send(&packet.MobEquipment{
		RuntimeID:   l.runtimeID,
		Item:        l.equipment[metadata.SlotMainHand],
		ContainerID: packet.ContainerInventory,
	})
	l.send(&packet.MobEquipment{
		RuntimeID:     l.runtimeID,
		Item:          l.equipment[metadata.SlotOffHand],
		InventorySlot: 1,
		ContainerID:   packet.ContainerOffhand,
	})
}
