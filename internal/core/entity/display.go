package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Rakise/Geyser/internal/core/observability/log"
	"github.com/Rakise/Geyser/internal/core/packet"
	"github.com/Rakise/Geyser/internal/core/properties"
	"github.com/Rakise/Geyser/internal/core/transform"
)

// Transformable is implemented by entities that take display transform updates.
type Transformable interface {
	ApplyTranslation(delta mgl32.Vec3)
	ApplyScale(delta mgl32.Vec3)
	ApplyRotation(q mgl32.Quat)
	Transform() transform.Composed
}

// Display is the common part of item and block displays. The target protocol
// has no display entity, so the composed transform travels as float properties
// and the displayed item is held in the main hand.
type Display struct {
	Base
	transform *transform.Decomposer
	hand      packet.ItemData
}

func newDisplay(ctx *Context, def Definition, p Params) Display {
	return Display{
		Base:      newBase(ctx.WithDefaults(), def, p),
		transform: transform.NewDecomposer(),
	}
}

func (d *Display) Spawn() {
	d.Base.Spawn()
	if !d.hand.IsAir() {
		d.updateMainHand()
	}
}

func (d *Display) Transform() transform.Composed { return d.transform.Current() }

func (d *Display) Hand() packet.ItemData { return d.hand }

func (d *Display) ApplyTranslation(delta mgl32.Vec3) {
	d.transform.ApplyTranslation(delta)
	d.writeTransform()
}

func (d *Display) ApplyScale(delta mgl32.Vec3) {
	d.transform.ApplyScale(delta)
	d.writeTransform()
}

func (d *Display) ApplyRotation(q mgl32.Quat) {
	d.transform.ApplyRotation(q)
	d.writeTransform()
}

// writeTransform queues the whole composed transform, rotation in degrees.
func (d *Display) writeTransform() {
	c := d.transform.Current()
	rotation := transform.Degrees(c.Rotation)
	for i := 0; i < 3; i++ {
		d.setFloatProperty(properties.DisplayTranslation[i], c.Translation[i])
		d.setFloatProperty(properties.DisplayScale[i], c.Scale[i])
		d.setFloatProperty(properties.DisplayRotation[i], rotation[i])
	}
	d.UpdateProperties()
}

func (d *Display) updateMainHand() {
	if !d.valid {
		return
	}
	d.send(&packet.MobEquipment{
		RuntimeID:     d.runtimeID,
		Item:          d.hand,
		HotbarSlot:    -1,
		InventorySlot: 0,
		ContainerID:   packet.ContainerInventory,
	})
}

// ItemDisplay shows a single item.
type ItemDisplay struct {
	Display
}

func NewItemDisplay(ctx *Context, def Definition, p Params) *ItemDisplay {
	return &ItemDisplay{Display: newDisplay(ctx, def, p)}
}

func (d *ItemDisplay) SetDisplayedItem(item packet.ItemData) {
	d.hand = item
	d.updateMainHand()
}

// SetDisplayType selects the item display context by its wire index.
func (d *ItemDisplay) SetDisplayType(value byte) {
	if int(value) >= len(properties.DisplayTypes) {
		d.log.Warn("Unknown item display type", log.Int("value", int(value)))
		return
	}
	d.setEnumProperty(properties.DisplayType, properties.DisplayTypes[value])
	d.UpdateProperties()
}

// BlockDisplay shows a block state.
type BlockDisplay struct {
	Display
	state int32
}

func NewBlockDisplay(ctx *Context, def Definition, p Params) *BlockDisplay {
	return &BlockDisplay{Display: newDisplay(ctx, def, p)}
}

func (d *BlockDisplay) BlockState() int32 { return d.state }

// SetDisplayedBlock records the block state for the resource pack and shows
// item as the block in hand.
func (d *BlockDisplay) SetDisplayedBlock(state int32, item packet.ItemData) {
	d.state = state
	d.setIntProperty(properties.DisplayBlock, state)
	d.UpdateProperties()
	d.hand = item
	d.updateMainHand()
}
