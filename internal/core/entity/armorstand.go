package entity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Rakise/Geyser/internal/core/metadata"
	"github.com/Rakise/Geyser/internal/core/observability/log"
	"github.com/Rakise/Geyser/internal/core/packet"
	"github.com/Rakise/Geyser/internal/core/properties"
	"github.com/Rakise/Geyser/internal/core/transform"
)

// State is the visual arrangement an armor stand is translated into.
type State uint8

const (
	// StateVisible: the stand is visible and renders normally.
	StateVisible State = iota
	// StateInvisibleNoName: invisible with nothing to show.
	StateInvisibleNoName
	// StateInvisibleNameNoArmor: shown at zero scale so only the name tag renders.
	StateInvisibleNameNoArmor
	// StateInvisibleNameWithArmor: invisible so the armor renders, with a
	// synthetic secondary entity carrying the name tag.
	StateInvisibleNameWithArmor
)

func (s State) String() string {
	switch s {
	case StateVisible:
		return "visible"
	case StateInvisibleNoName:
		return "invisible_no_name"
	case StateInvisibleNameNoArmor:
		return "invisible_name_no_armor"
	case StateInvisibleNameWithArmor:
		return "invisible_name_with_armor"
	default:
		return "unknown"
	}
}

// InteractionResult is the outcome of a player interacting with an entity.
type InteractionResult uint8

const (
	InteractionPass InteractionResult = iota
	InteractionConsume
)

// ArmorStand translates source armor stands. The target client hides the name
// tag of invisible entities, so an invisible stand that wears equipment and has
// a name is split in two: the stand itself stays invisible to show the armor,
// and a secondary nameTag entity shows the name.
type ArmorStand struct {
	Living

	marker         bool
	invisible      bool
	small          bool
	nameTagVisible bool

	// secondary is owned exclusively by this stand and never reused once despawned.
	secondary *nameTag

	// positionRequiresOffset is set while the stand is shrunk to zero scale to
	// show only its name, which then has to be lifted by the stand height.
	positionRequiresOffset bool
	// positionUpdateRequired defers a position resync to the next metadata flush.
	positionUpdateRequired bool
}

func NewArmorStand(ctx *Context, def Definition, p Params) *ArmorStand {
	a := &ArmorStand{Living: newLiving(ctx.WithDefaults(), def, p)}
	a.onInvisible = a.setInvisible
	return a
}

func (a *ArmorStand) IsMarker() bool    { return a.marker }
func (a *ArmorStand) IsSmall() bool     { return a.small }
func (a *ArmorStand) IsInvisible() bool { return a.invisible }

// PositionRequiresOffset reports whether sent positions are lifted by YOffset.
func (a *ArmorStand) PositionRequiresOffset() bool { return a.positionRequiresOffset }

// PositionUpdateRequired reports whether a position resync is pending.
func (a *ArmorStand) PositionUpdateRequired() bool { return a.positionUpdateRequired }

// Secondary returns the runtime id of the name tag entity, if one exists.
func (a *ArmorStand) Secondary() (int64, bool) {
	if a.secondary == nil {
		return 0, false
	}
	return a.secondary.runtimeID, true
}

// State derives the current arrangement from the stand's inputs.
func (a *ArmorStand) State() State {
	switch {
	case !a.invisible:
		return StateVisible
	case a.nametag == "":
		return StateInvisibleNoName
	case a.HasEquipment():
		return StateInvisibleNameWithArmor
	default:
		return StateInvisibleNameNoArmor
	}
}

func (a *ArmorStand) Spawn() {
	a.spawnAt(a.position.Add(mgl32.Vec3{0, a.YOffset(), 0}))
}

func (a *ArmorStand) Despawn() {
	a.despawnSecondary()
	a.Base.Despawn()
}

func (a *ArmorStand) MoveRelative(delta mgl32.Vec3, yaw, pitch, headYaw float32, onGround bool) {
	a.MoveAbsolute(a.position.Add(delta), yaw, pitch, headYaw, onGround, false)
}

// MoveAbsolute moves the stand and its secondary. Armor stands have no separate
// head or body yaw on the target side, so yaw is sent for all three.
func (a *ArmorStand) MoveAbsolute(position mgl32.Vec3, yaw, pitch, headYaw float32, onGround, teleported bool) {
	if a.secondary != nil {
		a.secondary.MoveAbsolute(position, yaw, pitch, headYaw, onGround, teleported)
	}
	sent := position
	if offset := a.YOffset(); offset != 0 {
		sent = position.Add(mgl32.Vec3{0, offset, 0})
	}
	a.moveTo(position, sent, yaw, yaw, yaw, onGround, teleported)
	a.pitch, a.headYaw = pitch, headYaw
}

func (a *ArmorStand) SetDisplayName(name string) {
	a.Base.SetDisplayName(name)
	a.updateSecondEntityStatus(false)
}

func (a *ArmorStand) SetDisplayNameVisible(visible bool) {
	a.Base.SetDisplayNameVisible(visible)
	a.nameTagVisible = visible
	a.updateSecondEntityStatus(false)
}

func (a *ArmorStand) setInvisible(invisible bool) {
	a.invisible = invisible
	a.updateSecondEntityStatus(false)
}

func (a *ArmorStand) SetEquipment(slot metadata.Slot, item packet.ItemData) {
	a.Living.SetEquipment(slot, item)
	a.updateSecondEntityStatus(true)
}

// SetArmorStandFlags applies the source armor stand flag byte.
func (a *ArmorStand) SetArmorStandFlags(flags byte) {
	offsetChanged := false

	small := flags&metadata.ArmorStandSmall != 0
	if small != a.small {
		a.small = small
		offsetChanged = true
	}

	marker := flags&metadata.ArmorStandMarker != 0
	if marker != a.marker {
		a.marker = marker
		if marker {
			a.setBoundingBox(0, 0)
		} else {
			a.setBoundingBox(a.def.Width, a.def.Height)
		}
		offsetChanged = true
	}

	if offsetChanged {
		if a.positionRequiresOffset {
			a.positionUpdateRequired = true
		} else if a.secondary != nil {
			a.secondary.positionUpdateRequired = true
		}
		a.updateSecondEntityStatus(false)
	}

	// Only a client resource pack reads these.
	a.setBoolProperty(properties.ArmorStandArms, flags&metadata.ArmorStandArms != 0)
	a.setBoolProperty(properties.ArmorStandNoBasePlate, flags&metadata.ArmorStandNoBasePlate != 0)
	a.setBoolProperty(properties.ArmorStandSmall, a.small)
	a.UpdateProperties()
}

// SetPartRotation writes a body part pose, in degrees, to the part's properties.
func (a *ArmorStand) SetPartRotation(part metadata.Part, rotation mgl32.Vec3) {
	names := properties.PartRotation(part.Prefix())
	for i, name := range names {
		a.setFloatProperty(name, transform.WrapDegrees(rotation[i]))
	}
	a.UpdateProperties()
}

// UpdateMetadata flushes the secondary before the stand so the name tag never
// lags the equipment, then applies any deferred position resync.
func (a *ArmorStand) UpdateMetadata() {
	if a.secondary != nil {
		a.secondary.UpdateMetadata()
	}
	a.Base.UpdateMetadata()
	if a.positionUpdateRequired {
		a.positionUpdateRequired = false
		a.MoveAbsolute(a.position, a.yaw, a.pitch, a.headYaw, a.onGround, true)
	}
}

// UpdateProperties mirrors pending writes to the secondary, then flushes them.
func (a *ArmorStand) UpdateProperties() {
	if a.secondary != nil && a.secondary.valid && a.props.HasPending() {
		pk := &packet.SetEntityData{RuntimeID: a.secondary.runtimeID}
		pk.IntProperties, pk.FloatProperties = a.props.Pending()
		a.secondary.send(pk)
	}
	a.Base.UpdateProperties()
}

// InteractAt resolves a player interaction. Markers never consume it, and
// neither does a name tag in hand since it must reach the server.
func (a *ArmorStand) InteractAt(holdingNameTag bool) InteractionResult {
	if !a.marker && !holdingNameTag {
		return InteractionConsume
	}
	return InteractionPass
}

// YOffset is how far sent positions are lifted so the name tag appears where
// the source client would draw it.
func (a *ArmorStand) YOffset() float32 {
	if !a.positionRequiresOffset || a.marker || a.secondary != nil {
		return 0
	}
	return a.def.Height * a.scale()
}

func (a *ArmorStand) scale() float32 {
	if a.small {
		return 0.5
	}
	return 1
}

func (a *ArmorStand) updateOffsetRequirement(required bool) {
	if required != a.positionRequiresOffset {
		a.positionRequiresOffset = required
		a.positionUpdateRequired = true
	}
}

// updateSecondEntityStatus re-evaluates the arrangement after any input changed
// and creates or removes the secondary entity accordingly.
func (a *ArmorStand) updateSecondEntityStatus(sendMetadata bool) {
	switch a.State() {
	case StateVisible:
		a.SetFlag(packet.FlagInvisible, false)
		a.dirty[packet.DataScale] = a.scale()
		a.updateOffsetRequirement(false)
		a.despawnSecondary()

	case StateInvisibleNameWithArmor:
		a.dirty[packet.DataScale] = a.scale()
		a.SetFlag(packet.FlagInvisible, true)
		a.updateOffsetRequirement(false)
		a.syncSecondary()

	case StateInvisibleNoName:
		a.dirty[packet.DataScale] = a.scale()
		a.SetFlag(packet.FlagInvisible, true)
		a.updateOffsetRequirement(false)
		a.despawnSecondary()

	case StateInvisibleNameNoArmor:
		a.SetFlag(packet.FlagInvisible, false)
		a.dirty[packet.DataScale] = float32(0)
		a.updateOffsetRequirement(!a.marker)
		a.despawnSecondary()
	}

	if sendMetadata {
		a.UpdateMetadata()
	}
}

// syncSecondary creates the secondary on first need and copies the name state
// onto it. It spawns at most once per secondary.
func (a *ArmorStand) syncSecondary() {
	if a.secondary == nil {
		a.secondary = newNameTag(a)
		a.log.Debug("Name tag entity created", log.Int64("secondary_runtime_id", a.secondary.runtimeID))
	}
	s := a.secondary
	s.small = a.small
	s.marker = a.marker
	s.positionRequiresOffset = true
	s.dirty[packet.DataName] = a.nametag
	s.dirty[packet.DataNametagAlwaysShow] = boolByte(a.nameTagVisible)
	s.flags |= a.flags
	s.flagsDirty = true
	s.SetFlag(packet.FlagInvisible, false)
	s.dirty[packet.DataScale] = float32(0)
	s.setBoundingBox(0, 0)
	if !s.valid {
		s.Spawn()
	}
}

func (a *ArmorStand) despawnSecondary() {
	if a.secondary == nil {
		return
	}
	a.secondary.Despawn()
	a.log.Debug("Name tag entity removed", log.Int64("secondary_runtime_id", a.secondary.runtimeID))
	a.secondary = nil
}

// nameTag is the synthetic entity that renders an invisible armor stand's name.
// It has no source identity, no equipment and no reference back to its stand;
// the stand pushes every change to it.
type nameTag struct {
	Base

	small  bool
	marker bool

	positionRequiresOffset bool
	positionUpdateRequired bool
}

func newNameTag(primary *ArmorStand) *nameTag {
	p := Params{
		SourceID: 0,
		UUID:     uuid.Nil,
		Position: primary.position,
		Yaw:      primary.yaw,
		Pitch:    primary.pitch,
		HeadYaw:  primary.headYaw,
	}
	n := &nameTag{Base: newBase(primary.ctx, primary.def, p)}
	n.props = properties.NewAccumulator(nil)
	return n
}

func (n *nameTag) yOffset() float32 {
	if !n.positionRequiresOffset || n.marker {
		return 0
	}
	scale := float32(1)
	if n.small {
		scale = 0.5
	}
	return n.def.Height * scale
}

func (n *nameTag) Spawn() {
	n.spawnAt(n.position.Add(mgl32.Vec3{0, n.yOffset(), 0}))
}

func (n *nameTag) MoveAbsolute(position mgl32.Vec3, yaw, pitch, headYaw float32, onGround, teleported bool) {
	n.moveTo(position, position.Add(mgl32.Vec3{0, n.yOffset(), 0}), yaw, yaw, yaw, onGround, teleported)
	n.pitch, n.headYaw = pitch, headYaw
}

func (n *nameTag) UpdateMetadata() {
	n.Base.UpdateMetadata()
	if n.positionUpdateRequired {
		n.positionUpdateRequired = false
		n.MoveAbsolute(n.position, n.yaw, n.pitch, n.headYaw, n.onGround, true)
	}
}
